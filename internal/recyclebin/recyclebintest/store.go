// Package recyclebintest provides an in-memory recyclebin.Store for tests.
package recyclebintest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/babarot/xcom/internal/recyclebin"
)

// Store is an in-memory store that keeps count of open handles
type Store struct {
	mu      sync.Mutex
	entries []entry
	seq     int

	open         int
	enumerations int
	restored     []string
	purged       []string

	// EnumerateErr is returned by Enumerate when set
	EnumerateErr error

	// NextErrAt makes Next fail on the n-th call (1-based) of an enumeration
	NextErrAt int

	// ResolveErr maps an original path to the error its handle resolves with
	ResolveErr map[string]error

	// RestoreErr and PurgeErr map an original path to the error returned
	RestoreErr map[string]error
	PurgeErr   map[string]error

	// EmptyErr is returned by Empty when set
	EmptyErr error
}

type entry struct {
	id   string
	path string
	at   time.Time
	size int64
}

func New(paths ...string) *Store {
	s := &Store{
		ResolveErr: map[string]error{},
		RestoreErr: map[string]error{},
		PurgeErr:   map[string]error{},
	}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add puts a new entry at the end of the store
func (s *Store) Add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.entries = append(s.entries, entry{
		id:   fmt.Sprintf("$I%06d", s.seq),
		path: path,
		at:   time.Date(2026, 1, 26, 10, 0, s.seq, 0, time.UTC),
		size: int64(s.seq * 100),
	})
}

// Paths returns the original paths currently in the store
func (s *Store) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		paths = append(paths, e.path)
	}
	return paths
}

// Open returns the number of handles and enumerators not yet released
func (s *Store) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Enumerations returns how many times Enumerate succeeded
func (s *Store) Enumerations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enumerations
}

func (s *Store) Restored() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.restored...)
}

func (s *Store) Purged() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.purged...)
}

func (s *Store) Enumerate(ctx context.Context) (recyclebin.Enumerator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EnumerateErr != nil {
		return nil, s.EnumerateErr
	}
	s.enumerations++
	s.open++
	return &enumerator{store: s, entries: append([]entry(nil), s.entries...)}, nil
}

func (s *Store) Restore(ctx context.Context, item recyclebin.Item) error {
	return s.take(item, s.RestoreErr, &s.restored)
}

func (s *Store) Purge(ctx context.Context, item recyclebin.Item) error {
	return s.take(item, s.PurgeErr, &s.purged)
}

func (s *Store) take(item recyclebin.Item, fail map[string]error, log *[]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fail[item.OriginalPath]; err != nil {
		return err
	}
	for i, e := range s.entries {
		if e.id == item.ID() {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			*log = append(*log, e.path)
			return nil
		}
	}
	return recyclebin.ErrNotFound
}

func (s *Store) Empty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EmptyErr != nil {
		return s.EmptyErr
	}
	s.entries = nil
	return nil
}

func (s *Store) Close() error { return nil }

type enumerator struct {
	store   *Store
	entries []entry
	calls   int
	closed  bool
}

func (e *enumerator) Next() (recyclebin.Handle, error) {
	e.calls++
	if e.store.NextErrAt > 0 && e.calls == e.store.NextErrAt {
		return nil, errors.New("enumeration interrupted")
	}
	if len(e.entries) == 0 {
		return nil, io.EOF
	}
	next := e.entries[0]
	e.entries = e.entries[1:]

	e.store.mu.Lock()
	e.store.open++
	e.store.mu.Unlock()
	return &handle{store: e.store, entry: next}, nil
}

func (e *enumerator) Close() error {
	if e.closed {
		return errors.New("enumerator already closed")
	}
	e.closed = true
	e.store.mu.Lock()
	e.store.open--
	e.store.mu.Unlock()
	return nil
}

type handle struct {
	store    *Store
	entry    entry
	released bool
}

func (h *handle) Resolve() (recyclebin.Item, error) {
	h.store.mu.Lock()
	err := h.store.ResolveErr[h.entry.path]
	h.store.mu.Unlock()
	if err != nil {
		return recyclebin.Item{}, err
	}
	return recyclebin.NewItem(h.entry.id, h.entry.path, h.entry.at, h.entry.size), nil
}

func (h *handle) Release() error {
	if h.released {
		return errors.New("handle already released")
	}
	h.released = true
	h.store.mu.Lock()
	h.store.open--
	h.store.mu.Unlock()
	return nil
}
