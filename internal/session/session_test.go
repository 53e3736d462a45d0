package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/babarot/xcom/internal/config"
	"github.com/babarot/xcom/internal/recyclebin"
	"github.com/babarot/xcom/internal/recyclebin/recyclebintest"
	"github.com/babarot/xcom/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// events records what the session showed, one string per call
type events []string

func (e *events) add(format string, args ...any) { *e = append(*e, fmt.Sprintf(format, args...)) }

func (e *events) Items(items []recyclebin.Item) {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	e.add("items %v", names)
}

func (e *events) Matches(items []recyclebin.Item, indices []int) {
	var hits []string
	for _, i := range indices {
		hits = append(hits, fmt.Sprintf("%d:%s", i+1, items[i].Name))
	}
	e.add("matches %v", hits)
}

func (e *events) Restored(item recyclebin.Item) { e.add("restored %s", item.Name) }
func (e *events) Purged(item recyclebin.Item)   { e.add("purged %s", item.Name) }
func (e *events) Failed(action string, item recyclebin.Item, err error) {
	e.add("failed %s %s", action, item.Name)
}
func (e *events) InvalidSelection()     { e.add("invalid") }
func (e *events) Cleared()              { e.add("cleared") }
func (e *events) ClearFailed(err error) { e.add("clear failed") }
func (e *events) Error(err error)       { e.add("error") }
func (e *events) Prompt()               {}

func run(t *testing.T, store *recyclebintest.Store, input string) (*Session, events, error) {
	t.Helper()
	var ev events
	s := New(recyclebin.NewCatalog(store), &ev, strings.NewReader(input))
	err := s.Run(context.Background())
	assert.Equal(t, 0, store.Open(), "handles left open")
	return s, ev, err
}

func TestPurgeSecond(t *testing.T) {
	store := recyclebintest.New("/A", "/B", "/C")
	s, ev, err := run(t, store, "2d\nq\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"/B"}, store.Purged())
	assert.Equal(t, []string{"/A", "/C"}, store.Paths())
	assert.Equal(t, events{"items [A B C]", "purged B", "items [A C]"}, ev)
	assert.Equal(t, Terminated, s.State())
}

func TestRestoreRangeAndList(t *testing.T) {
	store := recyclebintest.New("/a", "/b", "/c", "/d", "/e")
	_, ev, err := run(t, store, "2-3r\n1,2 D\nquit\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"/b", "/c"}, store.Restored())
	assert.Equal(t, []string{"/a", "/d"}, store.Purged())
	assert.Equal(t, events{
		"items [a b c d e]",
		"restored b", "restored c", "items [a d e]",
		"purged a", "purged d", "items [e]",
	}, ev)
}

func TestClearTerminates(t *testing.T) {
	store := recyclebintest.New("/a", "/b")
	s, ev, err := run(t, store, "c\nthis line is never read\n")
	require.NoError(t, err)

	assert.Equal(t, events{"items [a b]", "cleared", "items []"}, ev)
	assert.Equal(t, Terminated, s.State())
}

func TestClearFailureKeepsGoing(t *testing.T) {
	store := recyclebintest.New("/a")
	store.EmptyErr = errors.New("refused")
	_, ev, err := run(t, store, "c\nx\n")
	require.NoError(t, err)
	assert.Equal(t, events{"items [a]", "clear failed"}, ev)
}

func TestPurgeLastTerminates(t *testing.T) {
	store := recyclebintest.New("/only")
	s, ev, err := run(t, store, "1d\n")
	require.NoError(t, err)
	assert.Equal(t, events{"items [only]", "purged only", "items []"}, ev)
	assert.Equal(t, Terminated, s.State())
}

func TestFailuresDoNotStopBatch(t *testing.T) {
	store := recyclebintest.New("/a", "/b", "/c")
	store.RestoreErr["/b"] = errors.New("occupied")
	_, ev, err := run(t, store, "1-3r\nq\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/c"}, store.Restored())
	assert.Equal(t, events{"items [a b c]", "restored a", "failed restore b", "restored c", "items [b]"}, ev)
}

func TestInvalidSelection(t *testing.T) {
	store := recyclebintest.New("/a", "/b")
	_, ev, err := run(t, store, "9r\n0d\n5-2d\nd\nq\n")
	require.NoError(t, err)

	assert.Equal(t, events{"items [a b]", "invalid", "invalid", "invalid", "invalid"}, ev)
	assert.Empty(t, store.Purged())
	assert.Equal(t, 1, store.Enumerations())
}

func TestSearchUsesStaleSnapshot(t *testing.T) {
	store := recyclebintest.New("/Report.docx", "/notes.txt", "/report-old.docx")
	// the store changes after the first listing; searches must not see it
	catalog := &afterFirstList{Catalog: recyclebin.NewCatalog(store), store: store}
	var ev events
	s := New(catalog, &ev, strings.NewReader("REPORT\nnotes\nzzz\nq\n"))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, events{
		"items [Report.docx notes.txt report-old.docx]",
		"matches [1:Report.docx 3:report-old.docx]",
		"matches [2:notes.txt]",
		"matches []",
	}, ev)
	assert.Equal(t, 1, store.Enumerations())
}

// afterFirstList adds an entry to the store once the first snapshot is taken
type afterFirstList struct {
	Catalog
	store *recyclebintest.Store
	done  bool
}

func (a *afterFirstList) List(ctx context.Context) ([]recyclebin.Item, error) {
	items, err := a.Catalog.List(ctx)
	if !a.done {
		a.done = true
		a.store.Add("/report-new.docx")
	}
	return items, err
}

func TestEmptyInputRelists(t *testing.T) {
	store := recyclebintest.New("/a")
	_, ev, err := run(t, store, "\n\nq\n")
	require.NoError(t, err)
	assert.Equal(t, events{"items [a]", "items [a]", "items [a]"}, ev)
	assert.Equal(t, 3, store.Enumerations())
}

func TestQuitWords(t *testing.T) {
	for _, word := range []string{"q", "x", "exit", "quit", "  QUIT  "} {
		t.Run(word, func(t *testing.T) {
			store := recyclebintest.New("/a")
			s, ev, err := run(t, store, word+"\n1d\n")
			require.NoError(t, err)
			assert.Equal(t, Terminated, s.State())
			assert.Equal(t, events{"items [a]"}, ev)
			assert.Empty(t, store.Purged())
		})
	}
}

func TestEOFTerminates(t *testing.T) {
	store := recyclebintest.New("/a")
	s, _, err := run(t, store, "")
	require.NoError(t, err)
	assert.Equal(t, Terminated, s.State())
}

func TestEmptyStore(t *testing.T) {
	store := recyclebintest.New()
	s, ev, err := run(t, store, "1d\n")
	require.NoError(t, err)
	assert.Equal(t, events{"items []"}, ev)
	assert.Equal(t, Terminated, s.State())
}

func TestInitialListingFails(t *testing.T) {
	store := recyclebintest.New("/a")
	store.EnumerateErr = errors.New("no access")
	s, ev, err := run(t, store, "q\n")
	assert.True(t, recyclebin.IsEnumeration(err))
	assert.Empty(t, ev)
	assert.Equal(t, Terminated, s.State())
}

// failingRelist fails every List after the first
type failingRelist struct {
	Catalog
	calls int
}

func (f *failingRelist) List(ctx context.Context) ([]recyclebin.Item, error) {
	f.calls++
	if f.calls > 1 {
		return nil, &recyclebin.EnumerationError{Err: errors.New("gone")}
	}
	return f.Catalog.List(ctx)
}

func TestRelistFailureDropsSnapshot(t *testing.T) {
	store := recyclebintest.New("/a", "/b")
	var ev events
	s := New(&failingRelist{Catalog: recyclebin.NewCatalog(store)}, &ev, strings.NewReader("\n1d\nq\n"))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, events{"items [a b]", "error", "invalid"}, ev)
	assert.Empty(t, store.Purged())
}

func TestWithPrinter(t *testing.T) {
	store := recyclebintest.New("/home/u/a.txt", "/home/u/b.txt")
	var out bytes.Buffer
	p := ui.NewPrinter(&out, config.Default())

	s := New(recyclebin.NewCatalog(store), p, strings.NewReader("1r\nb.t\nq\n"))
	require.NoError(t, s.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Restored:")
	assert.Contains(t, got, "b.txt")
	assert.Equal(t, []string{"/home/u/a.txt"}, store.Restored())
}
