//go:build !windows

package atomic

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// sameVolume reports whether a rename from src to dst can stay on one
// device. The parent of dst must already exist.
func sameVolume(src, dst string) (bool, error) {
	srcDev, err := device(src)
	if err != nil {
		return false, fmt.Errorf("source: %w", err)
	}
	dstDev, err := device(filepath.Dir(dst))
	if err != nil {
		return false, fmt.Errorf("destination: %w", err)
	}
	return srcDev == dstDev, nil
}

func device(path string) (uint64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("no device number for %s", path)
	}
	return uint64(st.Dev), nil
}
