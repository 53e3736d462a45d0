package fs

import (
	"path/filepath"
	"strings"
)

// IsUnsafePath reports whether path names something that must never be
// moved away wholesale: ".", "..", or a filesystem/volume root.
func IsUnsafePath(path string) (bool, error) {
	// Check the raw input first so "." and ".." survive normalisation
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true, nil
	}

	cleaned := filepath.Clean(path)
	if cleaned == string(filepath.Separator) || cleaned == "/" {
		return true, nil
	}

	// C:\ and friends
	if vol := filepath.VolumeName(cleaned); vol != "" && cleaned == vol+string(filepath.Separator) {
		return true, nil
	}

	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}
