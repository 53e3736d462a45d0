package atomic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"
)

// Options specifies options for move and copy operations
type Options struct {
	Force bool // Replace an existing destination
}

// Move renames src to dst, falling back to copy and delete across devices
func Move(src, dst string, opts Options) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	if err := prepareDestination(src, dst, opts); err != nil {
		return err
	}

	if same, _ := sameVolume(src, dst); same {
		if err := os.Rename(src, dst); err == nil {
			return nil
		}
	}

	return copyAndDelete(src, dst)
}

// Copy duplicates src (file, directory or symlink) at dst
func Copy(src, dst string, opts Options) error {
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	if err := prepareDestination(src, dst, opts); err != nil {
		return err
	}

	if err := cp.Copy(src, dst, copyOptions()); err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	return nil
}

func prepareDestination(src, dst string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &MoveError{Op: "create_parent", Src: src, Dst: dst, Err: err}
	}

	if _, err := os.Lstat(dst); err == nil {
		if !opts.Force {
			return ErrDestinationExists
		}
		if err := os.RemoveAll(dst); err != nil {
			return &MoveError{Op: "replace", Src: src, Dst: dst, Err: err}
		}
	}
	return nil
}

func copyOptions() cp.Options {
	return cp.Options{
		OnSymlink: func(src string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		Sync:          true,
	}
}

// copyAndDelete copies a file or directory and then deletes the original
func copyAndDelete(src, dst string) error {
	if err := cp.Copy(src, dst, copyOptions()); err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}

	if err := os.RemoveAll(src); err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return &MoveError{
				Op:  "cleanup",
				Src: src,
				Dst: dst,
				Err: fmt.Errorf("failed to remove both source and destination: %v, %v", err, rmErr),
			}
		}
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: err}
	}

	return nil
}

func validatePaths(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}

	info, err := os.Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrSourceNotFound
		}
		return err
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if absSrc == absDst {
		return ErrSameFile
	}
	if info.IsDir() && strings.HasPrefix(absDst, absSrc+string(filepath.Separator)) {
		return ErrDestinationInsideSource
	}

	return nil
}
