package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/babarot/xcom/internal/config"
	"github.com/babarot/xcom/internal/recyclebin/binfs"
	"github.com/babarot/xcom/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

type harness struct {
	cli    *CLI
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, name, stdin string) harness {
	t.Helper()
	h := harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.cli = newCLI(Version{AppName: name, Version: "v0.0.0-test", Revision: "abc1234"})
	h.cli.stdin = strings.NewReader(stdin)
	h.cli.stdout = h.stdout
	h.cli.stderr = h.stderr
	h.cli.auditPath = filepath.Join(t.TempDir(), "xcom.log")
	return h
}

func (h harness) audit(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.cli.auditPath)
	require.NoError(t, err)
	return string(data)
}

func writeConfig(t *testing.T, edit func(*config.Config)) string {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Enabled = false
	if edit != nil {
		edit(&cfg)
	}
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func trash(t *testing.T, root, id, original, content string) {
	t.Helper()
	rec := binfs.Record{
		Version:   2,
		Size:      int64(len(content)),
		DeletedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Path:      original,
	}
	data, err := rec.MarshalBinary()
	require.NoError(t, err)
	writeFile(t, filepath.Join(root, "$I"+id), string(data))
	writeFile(t, filepath.Join(root, "$R"+id), content)
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "xmove", "")
	require.NoError(t, h.cli.transfer(transfer.Move, []string{"--version"}))

	out := h.stdout.String()
	assert.Contains(t, out, "xmove - move files in one batch")
	assert.Contains(t, out, "version: v0.0.0-test")
	assert.Contains(t, out, "revision: abc1234")
}

func TestTransferUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"source only", []string{"a.txt"}},
		{"recursive source only", []string{"-r", "dir"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "xcopy", "")
			err := h.cli.transfer(transfer.Copy, tt.args)
			assert.ErrorIs(t, err, ErrUsage)
			assert.Equal(t, "USAGE: xcopy SOURCE1 [SOURCE2 ...] DESTINATION\n", h.stderr.String())
			assert.NoFileExists(t, h.cli.auditPath)
		})
	}
}

func TestRecycleBinList(t *testing.T) {
	tmp := t.TempDir()
	bin := filepath.Join(tmp, "bin")
	trash(t, bin, "A1B2C3.txt", filepath.Join(tmp, "home", "notes.txt"), "hello")

	h := newHarness(t, "recyclebin", "")
	require.NoError(t, h.cli.recycleBin([]string{"--config", writeConfig(t, nil), "--root", bin, "--list"}))

	out := h.stdout.String()
	assert.NotContains(t, out, "\x1b[", "piped listing must not be coloured")
	assert.Contains(t, out, "Recycle Bin Contents:")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "notes.txt")
	assert.FileExists(t, filepath.Join(bin, "$IA1B2C3.txt"))
}

func TestRecycleBinRootsFromConfig(t *testing.T) {
	tmp := t.TempDir()
	bin := filepath.Join(tmp, "bin")
	trash(t, bin, "XYZ.txt", filepath.Join(tmp, "report.txt"), "q3")

	cfg := writeConfig(t, func(c *config.Config) {
		c.Core.RecycleBin.Roots = []string{bin}
	})
	h := newHarness(t, "recyclebin", "")
	require.NoError(t, h.cli.recycleBin([]string{"--config", cfg, "-l"}))
	assert.Contains(t, h.stdout.String(), "report.txt")
}

func TestRecycleBinClean(t *testing.T) {
	tmp := t.TempDir()
	bin := filepath.Join(tmp, "bin")
	trash(t, bin, "A.txt", filepath.Join(tmp, "a.txt"), "a")
	trash(t, bin, "B.txt", filepath.Join(tmp, "b.txt"), "b")

	h := newHarness(t, "recyclebin", "")
	require.NoError(t, h.cli.recycleBin([]string{"--config", writeConfig(t, nil), "--root", bin, "-c"}))

	assert.Contains(t, h.stdout.String(), "Recycle Bin cleared.")
	entries, err := os.ReadDir(bin)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, h.audit(t), " CLEAR\n")
}

func TestRecycleBinDefaultCleansThenLists(t *testing.T) {
	tmp := t.TempDir()
	bin := filepath.Join(tmp, "bin")
	trash(t, bin, "A.txt", filepath.Join(tmp, "a.txt"), "a")

	h := newHarness(t, "recyclebin", "")
	require.NoError(t, h.cli.recycleBin([]string{"--config", writeConfig(t, nil), "--root", bin}))

	out := h.stdout.String()
	assert.Contains(t, out, "Recycle Bin cleared.")
	assert.Contains(t, out, "is empty")
}

func TestRecycleBinInteractive(t *testing.T) {
	tmp := t.TempDir()
	bin := filepath.Join(tmp, "bin")
	home := filepath.Join(tmp, "home")
	require.NoError(t, os.MkdirAll(home, 0755))
	// B first: item numbers follow $I names, not creation order
	trash(t, bin, "B.txt", filepath.Join(home, "b.txt"), "bravo")
	trash(t, bin, "A.txt", filepath.Join(home, "a.txt"), "alpha")

	h := newHarness(t, "recyclebin", "1r\n1d\n")
	require.NoError(t, h.cli.recycleBin([]string{"--config", writeConfig(t, nil), "--root", bin, "-i"}))

	out := h.stdout.String()
	assert.Contains(t, out, "1. [")
	assert.Less(t, strings.Index(out, "a.txt"), strings.Index(out, "b.txt"))
	assert.Contains(t, out, "Restored: a.txt")
	assert.Contains(t, out, "Deleted: b.txt")

	data, err := os.ReadFile(filepath.Join(home, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
	assert.NoFileExists(t, filepath.Join(home, "b.txt"))

	entries, err := os.ReadDir(bin)
	require.NoError(t, err)
	assert.Empty(t, entries)

	log := h.audit(t)
	assert.Contains(t, log, `RESTORE: "`+filepath.Join(home, "a.txt")+`"`)
	assert.Contains(t, log, `PURGE: "`+filepath.Join(home, "b.txt")+`"`)
}

func TestRecycleBinAuditDisabled(t *testing.T) {
	tmp := t.TempDir()
	bin := filepath.Join(tmp, "bin")
	trash(t, bin, "A.txt", filepath.Join(tmp, "a.txt"), "a")

	cfg := writeConfig(t, func(c *config.Config) {
		c.Core.Audit.Enabled = false
	})
	h := newHarness(t, "recyclebin", "")
	require.NoError(t, h.cli.recycleBin([]string{"--config", cfg, "--root", bin, "-c"}))
	assert.NoFileExists(t, h.cli.auditPath)
}

func TestOperationTitle(t *testing.T) {
	assert.Equal(t, "Copy", operationTitle(transfer.Copy))
	assert.Equal(t, "Move", operationTitle(transfer.Move))
}
