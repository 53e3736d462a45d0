package recyclebin

import "context"

// Handle is one enumerated entry. It stays valid until Release.
type Handle interface {
	// Resolve reads the display name, original path and metadata
	Resolve() (Item, error)

	// Release frees whatever the store holds open for the entry
	Release() error
}

// Enumerator walks the entries of a store one handle at a time
type Enumerator interface {
	// Next returns io.EOF after the last entry
	Next() (Handle, error)
	Close() error
}

// Store is the deleted-items capability the catalog is built on
type Store interface {
	// Enumerate opens a fresh enumeration of the store
	Enumerate(ctx context.Context) (Enumerator, error)

	// Restore returns item to its original location
	Restore(ctx context.Context, item Item) error

	// Purge removes item irreversibly
	Purge(ctx context.Context, item Item) error

	// Empty purges every entry without confirmation, progress UI or sound
	Empty(ctx context.Context) error

	Close() error
}

// Recorder receives audit records
type Recorder interface {
	Record(text string)
}

type nopRecorder struct{}

func (nopRecorder) Record(string) {}
