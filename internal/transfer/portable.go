//go:build !windows

package transfer

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/xcom/internal/core/atomic"
	xfs "github.com/babarot/xcom/internal/utils/fs"
)

// portableTransferer gives the SHFileOperationW contract to platforms
// without the windows shell: every source lands in dest under its base
// name, the first failure ends the batch and is reported as a shell code.
type portableTransferer struct {
	prompter Prompter
}

// NewTransferer returns a transferer built on rename and copy. A nil p
// replaces existing targets without asking.
func NewTransferer(p Prompter) Transferer {
	return &portableTransferer{prompter: p}
}

func (t *portableTransferer) Transfer(ctx context.Context, sources []string, dest string, op Operation) Result {
	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return Result{Code: codeDirDestIsFile}
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return Result{Code: codeFor(err)}
	}

	seen := make(map[string]bool, len(sources))
	var aborted bool
	for _, src := range sources {
		if ctx.Err() != nil {
			return Result{Aborted: true}
		}
		if unsafe, _ := xfs.IsUnsafePath(src); unsafe {
			return Result{Code: codeRootDir, Aborted: aborted}
		}

		key := absPath(src)
		if seen[key] {
			slog.Debug("skip duplicate source", "src", src)
			continue
		}
		seen[key] = true

		target := filepath.Join(dest, filepath.Base(filepath.Clean(src)))
		if key == absPath(target) {
			return Result{Code: codeSameFile, Aborted: aborted}
		}

		force := false
		if _, err := os.Lstat(target); err == nil {
			ok, err := t.confirm(target)
			if err != nil {
				return Result{Err: err, Aborted: aborted}
			}
			if !ok {
				slog.Debug("overwrite declined", "target", target)
				aborted = true
				continue
			}
			force = true
		}

		var err error
		switch op {
		case Move:
			err = atomic.Move(src, target, atomic.Options{Force: force})
		default:
			err = atomic.Copy(src, target, atomic.Options{Force: force})
		}
		if err != nil {
			slog.Debug("transfer failed", "op", op, "src", src, "target", target, "error", err)
			return Result{Code: codeFor(err), Aborted: aborted}
		}
		slog.Debug("transferred", "op", op, "src", src, "target", target)
	}
	return Result{Aborted: aborted}
}

func (t *portableTransferer) confirm(target string) (bool, error) {
	if t.prompter == nil {
		return true, nil
	}
	return t.prompter.ConfirmOverwrite(target)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// codeFor maps an error to the shell status code closest to it
func codeFor(err error) uint32 {
	switch {
	case errors.Is(err, atomic.ErrSourceNotFound),
		errors.Is(err, atomic.ErrInvalidPath),
		errors.Is(err, fs.ErrNotExist):
		return codeInvalidFiles
	case errors.Is(err, atomic.ErrSameFile):
		return codeSameFile
	case errors.Is(err, atomic.ErrDestinationInsideSource):
		return codeDestSubtree
	case errors.Is(err, fs.ErrPermission):
		return codeAccessDeniedSrc
	default:
		return codeErrorUnknown
	}
}
