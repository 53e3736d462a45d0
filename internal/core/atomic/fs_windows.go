//go:build windows

package atomic

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// sameVolume reports whether src and dst live on one volume, comparing
// serial numbers so mounted folders and drive letters are both handled.
// The parent of dst must already exist.
func sameVolume(src, dst string) (bool, error) {
	srcSerial, err := volumeSerial(src)
	if err != nil {
		return false, fmt.Errorf("source: %w", err)
	}
	dstSerial, err := volumeSerial(filepath.Dir(dst))
	if err != nil {
		return false, fmt.Errorf("destination: %w", err)
	}
	return srcSerial == dstSerial, nil
}

func volumeSerial(path string) (uint32, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	p, err := windows.UTF16PtrFromString(abs)
	if err != nil {
		return 0, err
	}

	root := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumePathName(p, &root[0], uint32(len(root))); err != nil {
		return 0, fmt.Errorf("volume of %s: %w", abs, err)
	}

	var serial uint32
	if err := windows.GetVolumeInformation(&root[0], nil, 0, &serial, nil, nil, nil, 0); err != nil {
		return 0, fmt.Errorf("volume information of %s: %w", windows.UTF16ToString(root), err)
	}
	return serial, nil
}
