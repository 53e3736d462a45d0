// Package recyclebin provides the deleted-items catalog: snapshots of a
// recycle-bin store and the restore, purge and clear operations on it.
package recyclebin

import (
	"path/filepath"
	"time"
)

// Item represents one entry of a recycle-bin snapshot
type Item struct {
	// Name is the display name, never empty
	Name string

	// OriginalPath is where the entry lived before deletion. It may be
	// empty when the store could not recover it.
	OriginalPath string

	// DeletedAt is zero when the store keeps no deletion time
	DeletedAt time.Time

	// Size is the payload size in bytes, 0 if unknown
	Size int64

	// id identifies the entry inside its store
	id string
}

// NewItem is called by Store implementations. id must let the store find
// the entry again in Restore and Purge.
func NewItem(id, originalPath string, deletedAt time.Time, size int64) Item {
	name := filepath.Base(originalPath)
	if originalPath == "" {
		name = id
	}
	return Item{
		Name:         name,
		OriginalPath: originalPath,
		DeletedAt:    deletedAt,
		Size:         size,
		id:           id,
	}
}

// ID returns the store-specific identifier
func (i Item) ID() string {
	return i.id
}

// Label returns the path used in messages and audit records
func (i Item) Label() string {
	if i.OriginalPath != "" {
		return i.OriginalPath
	}
	return i.Name
}
