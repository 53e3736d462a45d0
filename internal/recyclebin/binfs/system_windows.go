//go:build windows

package binfs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sys/windows"
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004

	// returned by SHEmptyRecycleBinW when there is nothing to empty
	eUnexpected = 0x8000FFFF
)

var (
	shell32                = windows.NewLazySystemDLL("shell32.dll")
	procSHEmptyRecycleBinW = shell32.NewProc("SHEmptyRecycleBinW")
)

// NewSystem returns the recycle bin of the current user: one
// $Recycle.Bin\<SID> directory on every fixed drive. Close releases the
// process token it holds.
func NewSystem() (*Store, error) {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return nil, fmt.Errorf("open process token: %w", err)
	}

	user, err := token.GetTokenUser()
	if err != nil {
		token.Close()
		return nil, fmt.Errorf("query token user: %w", err)
	}
	sid := user.User.Sid.String()

	drives, err := windows.GetLogicalDrives()
	if err != nil {
		token.Close()
		return nil, fmt.Errorf("list drives: %w", err)
	}

	var roots []string
	for i := 0; i < 26; i++ {
		if drives&(1<<uint(i)) == 0 {
			continue
		}
		drive := string(rune('A'+i)) + `:\`
		p, err := windows.UTF16PtrFromString(drive)
		if err != nil {
			continue
		}
		if windows.GetDriveType(p) != windows.DRIVE_FIXED {
			continue
		}
		roots = append(roots, filepath.Join(drive, "$Recycle.Bin", sid))
	}
	slog.Debug("system recycle bin", "sid", sid, "roots", roots)

	s := New(roots...)
	s.empty = shEmptyRecycleBin
	s.release = token.Close
	return s, nil
}

func shEmptyRecycleBin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := procSHEmptyRecycleBinW.Find(); err != nil {
		return err
	}
	hr, _, _ := procSHEmptyRecycleBinW.Call(0, 0, sherbNoConfirmation|sherbNoProgressUI|sherbNoSound)
	switch uint32(hr) {
	case 0:
		return nil
	case eUnexpected:
		slog.Debug("SHEmptyRecycleBinW: recycle bin already empty")
		return nil
	default:
		return fmt.Errorf("SHEmptyRecycleBinW failed: 0x%08x", uint32(hr))
	}
}
