// Package expand resolves the source arguments of xcopy and xmove into
// concrete paths.
package expand

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

const wildcard = "*"

// Expand resolves tokens in order and concatenates the results:
//
//	*      immediate entries of the current directory
//	dir*   immediate entries of dir (one level, not a prefix match)
//	other  passed through unchanged, existence is not checked
//
// Paths matched by more than one token appear once per token.
func Expand(tokens []string) ([]string, error) {
	var paths []string
	for _, token := range tokens {
		dir, ok := wildcardDir(token)
		if !ok {
			paths = append(paths, token)
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", token, err)
		}
		paths = append(paths, lo.Map(entries, func(e os.DirEntry, _ int) string {
			return join(dir, e.Name())
		})...)
	}
	slog.Debug("expanded sources", "tokens", tokens, "paths", len(paths))
	return paths, nil
}

func wildcardDir(token string) (string, bool) {
	if !strings.HasSuffix(token, wildcard) {
		return "", false
	}
	dir := strings.TrimSuffix(token, wildcard)
	if dir == "" {
		dir = "."
	}
	return dir, true
}

func join(dir, name string) string {
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}

type walkOptions struct {
	exclude []glob.Glob
}

// WalkOption configures Walk
type WalkOption func(*walkOptions)

// Exclude skips files and directories whose base name matches one of the
// compiled patterns
func Exclude(patterns ...glob.Glob) WalkOption {
	return func(o *walkOptions) {
		o.exclude = append(o.exclude, patterns...)
	}
}

// CompileExcludes compiles glob patterns such as "*.tmp" or ".git"
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Walk returns every regular file below root. Unreadable subtrees are
// skipped and symlinks are not followed. A missing root yields nothing.
func Walk(root string, opts ...WalkOption) []string {
	var o walkOptions
	for _, opt := range opts {
		opt(&o)
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("skip unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && o.excluded(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// WalkAll walks every root in order and concatenates the results
func WalkAll(roots []string, opts ...WalkOption) []string {
	return lo.FlatMap(roots, func(root string, _ int) []string {
		return Walk(root, opts...)
	})
}

func (o walkOptions) excluded(name string) bool {
	return lo.SomeBy(o.exclude, func(g glob.Glob) bool {
		return g.Match(name)
	})
}
