package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/babarot/xcom/internal/config"
)

func backups(t *testing.T, path string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), filepath.Base(path)+".") {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestRotateWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	w, err := NewRotateWriter(path, config.Rotation{MaxSize: "1KB", MaxFiles: 2})
	if err != nil {
		t.Fatalf("NewRotateWriter() error = %v", err)
	}
	defer w.Close()

	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return clock }

	chunk := []byte(strings.Repeat("x", 600) + "\n")
	for i := 0; i < 4; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		clock = clock.Add(time.Minute)
	}

	got := backups(t, path)
	if len(got) != 2 {
		t.Fatalf("backups = %v, want 2 files", got)
	}
	if got[0] != "debug.log.20260501-100200" || got[1] != "debug.log.20260501-100300" {
		t.Errorf("backups = %v, want the two newest", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(len(chunk)) {
		t.Errorf("current log size = %d, want %d", info.Size(), len(chunk))
	}
}

func TestRotateWriterMaxAge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	old := path + ".20200101-000000"
	if err := os.WriteFile(old, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-60 * 24 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotateWriter(path, config.Rotation{MaxSize: "1KB", MaxAge: "30 days"})
	if err != nil {
		t.Fatalf("NewRotateWriter() error = %v", err)
	}
	defer w.Close()

	if _, err := w.Write([]byte(strings.Repeat("y", 1100))); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("stale backup still present: %v", err)
	}
}

func TestNewRotateWriterInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Rotation
	}{
		{"size", config.Rotation{MaxSize: "lots"}},
		{"age", config.Rotation{MaxSize: "1MB", MaxAge: "eventually"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRotateWriter(filepath.Join(t.TempDir(), "x.log"), tt.cfg); err == nil {
				t.Error("NewRotateWriter() error = nil, want error")
			}
		})
	}
}
