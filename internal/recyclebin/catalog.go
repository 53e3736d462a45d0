package recyclebin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Catalog lists a Store into snapshots and applies mutations to items of
// a snapshot. A snapshot is only valid until the next mutation.
type Catalog struct {
	store    Store
	recorder Recorder
}

type Option func(*Catalog)

// WithRecorder sets where restore, purge and clear are recorded
func WithRecorder(r Recorder) Option {
	return func(c *Catalog) {
		if r != nil {
			c.recorder = r
		}
	}
}

func NewCatalog(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:    store,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List takes a snapshot of the store in the order the store yields entries.
// Entries that cannot be resolved are skipped. Every handle, and the
// enumerator itself, is released before List returns.
func (c *Catalog) List(ctx context.Context) ([]Item, error) {
	enum, err := c.store.Enumerate(ctx)
	if err != nil {
		return nil, &EnumerationError{Err: err}
	}
	defer func() {
		if err := enum.Close(); err != nil {
			slog.Debug("failed to close enumerator", "error", err)
		}
	}()

	items := []Item{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, &EnumerationError{Err: err}
		}
		h, err := enum.Next()
		if err != nil {
			release(h)
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &EnumerationError{Err: err}
		}
		item, err := resolve(h)
		if err != nil {
			slog.Debug("skip unresolved entry", "error", err)
			continue
		}
		items = append(items, item)
	}

	slog.Debug("recycle bin listed", "items", len(items))
	return items, nil
}

func resolve(h Handle) (Item, error) {
	defer release(h)
	item, err := h.Resolve()
	if err != nil {
		return Item{}, err
	}
	if item.Name == "" {
		return Item{}, ErrEmptyName
	}
	return item, nil
}

func release(h Handle) {
	if h == nil {
		return
	}
	if err := h.Release(); err != nil {
		slog.Debug("failed to release handle", "error", err)
	}
}

// Restore moves item back to where it was deleted from
func (c *Catalog) Restore(ctx context.Context, item Item) error {
	return c.apply(ctx, "restore", item, c.store.Restore)
}

// Purge removes item permanently
func (c *Catalog) Purge(ctx context.Context, item Item) error {
	return c.apply(ctx, "purge", item, c.store.Purge)
}

func (c *Catalog) apply(ctx context.Context, op string, item Item, fn func(context.Context, Item) error) error {
	slog.Debug(op, "name", item.Name, "path", item.OriginalPath)
	if err := fn(ctx, item); err != nil {
		serr := &StorageError{Op: op, Path: item.Label(), Err: err}
		c.recorder.Record("ERROR: " + serr.Error())
		return serr
	}
	c.recorder.Record(fmt.Sprintf("%s: %q", strings.ToUpper(op), item.Label()))
	return nil
}

// Clear empties the whole store in one call
func (c *Catalog) Clear(ctx context.Context) error {
	slog.Debug("clear")
	if err := c.store.Empty(ctx); err != nil {
		serr := &StorageError{Op: "clear", Err: err}
		c.recorder.Record("ERROR: " + serr.Error())
		return serr
	}
	c.recorder.Record("CLEAR")
	return nil
}

// Result reports what happened to one selected item
type Result struct {
	// Index is the zero-based position in the snapshot
	Index int
	Item  Item
	Err   error
}

// RestoreAll restores items[i] for each index in ascending order. A failure
// is reported in its Result and does not stop the remaining items.
func (c *Catalog) RestoreAll(ctx context.Context, items []Item, indices []int) []Result {
	return c.each(ctx, items, indices, c.Restore)
}

// PurgeAll is RestoreAll for Purge
func (c *Catalog) PurgeAll(ctx context.Context, items []Item, indices []int) []Result {
	return c.each(ctx, items, indices, c.Purge)
}

func (c *Catalog) each(ctx context.Context, items []Item, indices []int, fn func(context.Context, Item) error) []Result {
	order := slices.Clone(indices)
	slices.Sort(order)

	results := make([]Result, 0, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= len(items) {
			results = append(results, Result{Index: idx, Err: ErrNotFound})
			continue
		}
		results = append(results, Result{
			Index: idx,
			Item:  items[idx],
			Err:   fn(ctx, items[idx]),
		})
	}
	return results
}

// Errors joins the failures of results, nil if every item succeeded
func Errors(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
