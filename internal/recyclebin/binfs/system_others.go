//go:build !windows

package binfs

// NewSystem is only available on windows. Use New with explicit roots.
func NewSystem() (*Store, error) {
	return nil, ErrUnsupported
}
