package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/k1LoW/duration"
)

var (
	sizeRe  = regexp.MustCompile(`^\d+(KB|MB|GB|TB|PB)$`)
	colorRe = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(fl.Field().String())
	if !sizeRe.MatchString(value) {
		return false
	}
	_, err := units.FromHumanSize(value)
	return err == nil
}

// validateColorCode checks if the field contains a valid hex color code.
// Empty means "terminal default".
func validateColorCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return colorRe.MatchString(value)
}

// validateDuration accepts human durations such as "30 days" or "2 weeks".
// Empty disables age-based pruning.
func validateDuration(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := duration.Parse(value)
	return err == nil
}

// validateDirPath is a validation function for directory paths that works on any OS.
// The standard "dirpath" validator rejects valid Windows paths such as
// "C:\$Recycle.Bin\S-1-5-21-...".
//
// Empty strings are considered invalid.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	cleanPath := filepath.Clean(path)

	// If path exists, verify that it is a directory
	fi, err := os.Stat(cleanPath)
	if err == nil {
		return fi.IsDir()
	}
	if os.IsNotExist(err) {
		// Format is fine; the root may live on a drive that is not mounted yet
		return true
	}
	if _, ok := err.(*os.PathError); ok {
		return false
	}

	return true
}
