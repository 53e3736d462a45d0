package recyclebin

import "errors"

var (
	// ErrNotFound is returned when a selection points outside the snapshot
	ErrNotFound = errors.New("item not found in snapshot")

	// ErrEmptyName is returned for entries that resolve without a name
	ErrEmptyName = errors.New("entry has no display name")
)

// EnumerationError is returned when the store cannot be opened or iterated.
// Items gathered before the failure are discarded.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return "failed to enumerate recycle bin: " + e.Err.Error()
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// StorageError wraps an error with the operation and item it concerns
type StorageError struct {
	// Op is the operation that failed ("restore", "purge", "clear")
	Op string

	// Path is the original path of the item, empty for clear
	Path string

	Err error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsEnumeration returns true if err came from listing the store
func IsEnumeration(err error) bool {
	var e *EnumerationError
	return errors.As(err, &e)
}
