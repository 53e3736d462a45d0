package binfs

import "errors"

var (
	// ErrInvalidRecord is returned for $I files that do not decode
	ErrInvalidRecord = errors.New("invalid recycle bin record")

	// ErrUnsupported is returned by NewSystem where there is no system recycle bin
	ErrUnsupported = errors.New("system recycle bin is only available on windows")
)
