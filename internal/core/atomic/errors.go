package atomic

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationExists indicates that the destination path already exists
	ErrDestinationExists = errors.New("destination already exists")

	// ErrSourceNotFound indicates that the source file does not exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrSameFile indicates that source and destination resolve to the same path
	ErrSameFile = errors.New("source and destination are the same file")

	// ErrDestinationInsideSource indicates a directory copied or moved into itself
	ErrDestinationInsideSource = errors.New("destination is inside the source directory")

	ErrInvalidPath = errors.New("invalid path specified")
)

// MoveError represents an error that occurred during a move or copy operation
type MoveError struct {
	Op  string // Operation being performed
	Src string // Source path
	Dst string // Destination path
	Err error  // Underlying error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s from %q to %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// IsDestinationExists checks if the error indicates the destination exists
func IsDestinationExists(err error) bool {
	return errors.Is(err, ErrDestinationExists)
}
