// Package audit appends one timestamped line per operation to xcom.log.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/babarot/xcom/internal/env"
	"github.com/babarot/xcom/internal/utils/log"
)

const (
	Filename = "xcom.log"

	timeFormat = "02-01-2006 15:04:05"
)

// Logger writes audit records. Failures to write are never returned.
type Logger struct {
	mu      sync.Mutex
	path    string
	enabled bool
	now     func() time.Time
}

type Option func(*Logger)

// Disabled turns the logger into a no-op
func Disabled(disabled bool) Option {
	return func(l *Logger) {
		l.enabled = !disabled
	}
}

// New returns a logger appending to path. An empty path selects xcom.log
// beside the executable, or in the current directory when that is unknown.
func New(path string, opts ...Option) *Logger {
	if path == "" {
		path = env.ExecutableDir(Filename)
	}
	l := &Logger{
		path:    path,
		enabled: true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file records are appended to
func (l *Logger) Path() string {
	return l.path
}

// Record appends "DD-MM-YYYY HH:MM:SS text" to the audit file
func (l *Logger) Record(text string) {
	if !l.enabled {
		return
	}
	slog.Log(context.Background(), slog.Level(log.AuditLevel), text)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		slog.Debug("audit log unavailable", "path", l.path, "error", err)
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s %s\n", l.now().Format(timeFormat), text); err != nil {
		slog.Debug("failed to write audit record", "path", l.path, "error", err)
	}
}
