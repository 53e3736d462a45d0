// Package binfs reads and modifies $Recycle.Bin directories directly.
//
// Each deleted entry is a pair inside a per-user bin directory:
//
//	$I<id><ext>  metadata record (version, size, deletion time, original path)
//	$R<id><ext>  the payload, a file or a whole directory tree
package binfs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/babarot/xcom/internal/core/atomic"
	"github.com/babarot/xcom/internal/recyclebin"
)

const (
	infoPrefix    = "$I"
	payloadPrefix = "$R"
)

// Store is a recyclebin.Store over one or more bin directories
type Store struct {
	roots []string

	// empty purges the whole bin. Explicit roots remove their files
	// one by one, the system bin asks the shell.
	empty func(ctx context.Context) error

	release func() error
}

var _ recyclebin.Store = (*Store)(nil)

// New returns a store over explicit bin directories, e.g.
// C:\$Recycle.Bin\S-1-5-21-...-1001. Roots are enumerated in order.
func New(roots ...string) *Store {
	s := &Store{roots: roots}
	s.empty = s.emptyRoots
	return s
}

// Roots returns the bin directories the store reads
func (s *Store) Roots() []string {
	return append([]string(nil), s.roots...)
}

func (s *Store) Enumerate(ctx context.Context) (recyclebin.Enumerator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slog.Debug("enumerate recycle bin", "roots", s.roots)
	return &enumerator{roots: s.Roots()}, nil
}

// Restore moves the payload back to the recorded path without going
// through the shell, so Explorer keeps no undo entry for it.
func (s *Store) Restore(ctx context.Context, item recyclebin.Item) error {
	info, err := infoPath(item)
	if err != nil {
		return err
	}
	rec, err := readRecord(info)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := atomic.Move(payloadPath(info), rec.Path, atomic.Options{}); err != nil {
		return err
	}
	slog.Debug("restored", "from", payloadPath(info), "to", rec.Path)

	if err := os.Remove(info); err != nil {
		return fmt.Errorf("remove record: %w", err)
	}
	return nil
}

func (s *Store) Purge(ctx context.Context, item recyclebin.Item) error {
	info, err := infoPath(item)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(info); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", recyclebin.ErrNotFound, info)
		}
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.RemoveAll(payloadPath(info)); err != nil {
		return fmt.Errorf("remove payload: %w", err)
	}
	if err := os.Remove(info); err != nil {
		return fmt.Errorf("remove record: %w", err)
	}
	slog.Debug("purged", "record", info)
	return nil
}

func (s *Store) Empty(ctx context.Context) error {
	return s.empty(ctx)
}

// emptyRoots removes every record and payload, continuing past failures
func (s *Store) emptyRoots(ctx context.Context) error {
	var errs []error
	for _, root := range s.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			name := e.Name()
			if !strings.HasPrefix(name, infoPrefix) && !strings.HasPrefix(name, payloadPrefix) {
				continue
			}
			if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Store) Close() error {
	if s.release == nil {
		return nil
	}
	return s.release()
}

func infoPath(item recyclebin.Item) (string, error) {
	id := item.ID()
	if !isRecord(filepath.Base(id)) {
		return "", fmt.Errorf("%w: %q is not a recycle bin record", recyclebin.ErrNotFound, id)
	}
	return id, nil
}

func isRecord(name string) bool {
	return len(name) > len(infoPrefix) && strings.HasPrefix(name, infoPrefix)
}

// payloadPath maps .../$IABC123.txt to .../$RABC123.txt
func payloadPath(info string) string {
	dir, name := filepath.Split(info)
	return filepath.Join(dir, payloadPrefix+strings.TrimPrefix(name, infoPrefix))
}

func readRecord(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", recyclebin.ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return ParseRecord(bufio.NewReader(f))
}

// enumerator walks the roots in order and each root in file name order,
// so indices stay put between listings of an unchanged bin
type enumerator struct {
	roots   []string
	root    string
	entries []os.DirEntry
}

func (e *enumerator) Next() (recyclebin.Handle, error) {
	for {
		for len(e.entries) > 0 {
			entry := e.entries[0]
			e.entries = e.entries[1:]
			if entry.IsDir() || !isRecord(entry.Name()) {
				continue
			}
			path := filepath.Join(e.root, entry.Name())
			f, err := os.Open(path)
			if err != nil {
				// removed since the directory was read
				slog.Debug("skip record", "path", path, "error", err)
				continue
			}
			return &handle{path: path, file: f}, nil
		}

		if len(e.roots) == 0 {
			return nil, io.EOF
		}
		e.root, e.roots = e.roots[0], e.roots[1:]
		entries, err := os.ReadDir(e.root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("skip missing root", "root", e.root)
				continue
			}
			return nil, fmt.Errorf("read %s: %w", e.root, err)
		}
		e.entries = entries
	}
}

func (e *enumerator) Close() error {
	e.entries = nil
	e.roots = nil
	return nil
}

type handle struct {
	path string
	file *os.File
}

func (h *handle) Resolve() (recyclebin.Item, error) {
	rec, err := ParseRecord(bufio.NewReader(h.file))
	if err != nil {
		return recyclebin.Item{}, fmt.Errorf("%s: %w", h.path, err)
	}
	if _, err := os.Lstat(payloadPath(h.path)); err != nil {
		return recyclebin.Item{}, fmt.Errorf("payload of %s: %w", h.path, err)
	}
	return recyclebin.NewItem(h.path, rec.Path, rec.DeletedAt, rec.Size), nil
}

func (h *handle) Release() error {
	return h.file.Close()
}
