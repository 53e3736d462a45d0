//go:build !windows

package transfer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPortableCopy(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "src", "a.txt")
	dir := filepath.Join(tmp, "src", "docs")
	write(t, a, "alpha")
	write(t, filepath.Join(dir, "readme.md"), "# docs")
	dest := filepath.Join(tmp, "out", "nested")

	res := NewTransferer(nil).Transfer(context.Background(), []string{a, dir, a}, dest, Copy)
	assert.Equal(t, Result{}, res)

	assert.Equal(t, "alpha", read(t, filepath.Join(dest, "a.txt")))
	assert.Equal(t, "# docs", read(t, filepath.Join(dest, "docs", "readme.md")))
	assert.FileExists(t, a, "copy keeps the source")
}

func TestPortableMove(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.txt")
	write(t, a, "alpha")
	dest := filepath.Join(tmp, "out")

	res := NewTransferer(nil).Transfer(context.Background(), []string{a}, dest, Move)
	assert.Equal(t, Result{}, res)
	assert.NoFileExists(t, a)
	assert.Equal(t, "alpha", read(t, filepath.Join(dest, "a.txt")))
}

func TestPortableOverwrite(t *testing.T) {
	tests := []struct {
		name    string
		answer  bool
		aborted bool
		want    string
	}{
		{"accepted", true, false, "new"},
		{"declined", false, true, "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			src := filepath.Join(tmp, "f.txt")
			dest := filepath.Join(tmp, "out")
			write(t, src, "new")
			write(t, filepath.Join(dest, "f.txt"), "old")

			var asked []string
			p := PrompterFunc(func(target string) (bool, error) {
				asked = append(asked, target)
				return tt.answer, nil
			})

			res := NewTransferer(p).Transfer(context.Background(), []string{src}, dest, Copy)
			assert.Equal(t, tt.aborted, res.Aborted)
			assert.Zero(t, res.Code)
			assert.Equal(t, []string{filepath.Join(dest, "f.txt")}, asked)
			assert.Equal(t, tt.want, read(t, filepath.Join(dest, "f.txt")))
		})
	}
}

func TestPortableFailures(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file.txt")
	write(t, file, "x")
	dir := filepath.Join(tmp, "dir")
	write(t, filepath.Join(dir, "inner.txt"), "y")

	tests := []struct {
		name    string
		sources []string
		dest    string
		code    uint32
	}{
		{"missing source", []string{filepath.Join(tmp, "nope")}, filepath.Join(tmp, "out1"), codeInvalidFiles},
		{"destination is a file", []string{dir}, file, codeDirDestIsFile},
		{"destination inside source", []string{dir}, filepath.Join(dir, "sub"), codeDestSubtree},
		{"same file", []string{file}, tmp, codeSameFile},
		{"root", []string{"/"}, filepath.Join(tmp, "out2"), codeRootDir},
		{"parent", []string{".."}, filepath.Join(tmp, "out3"), codeRootDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewTransferer(nil).Transfer(context.Background(), tt.sources, tt.dest, Copy)
			assert.Equal(t, tt.code, res.Code)
			assert.False(t, res.Aborted)
		})
	}
}

func TestPortableStopsAtFirstFailure(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.txt")
	c := filepath.Join(tmp, "c.txt")
	write(t, a, "a")
	write(t, c, "c")
	dest := filepath.Join(tmp, "out")

	res := NewTransferer(nil).Transfer(context.Background(), []string{a, filepath.Join(tmp, "b.txt"), c}, dest, Copy)
	assert.Equal(t, codeInvalidFiles, res.Code)
	assert.FileExists(t, filepath.Join(dest, "a.txt"))
	assert.NoFileExists(t, filepath.Join(dest, "c.txt"))
}

func TestPortableCanceled(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.txt")
	write(t, a, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := NewTransferer(nil).Transfer(ctx, []string{a}, filepath.Join(tmp, "out"), Copy)
	assert.True(t, res.Aborted)

	outcome, err := NewEngine(NewTransferer(nil)).Execute(ctx, Request{Sources: []string{a}, Destination: filepath.Join(tmp, "out"), Operation: Copy})
	require.NoError(t, err)
	assert.Equal(t, AbortedByUser, outcome.Status)
}
