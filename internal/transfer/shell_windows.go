//go:build windows

package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	foMove = 0x0001
	foCopy = 0x0002

	fofNoConfirmMkdir = 0x0200
)

var (
	shell32              = windows.NewLazySystemDLL("shell32.dll")
	procSHFileOperationW = shell32.NewProc("SHFileOperationW")
)

// shFileOpStruct mirrors SHFILEOPSTRUCTW on 64-bit windows
type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

type shellTransferer struct{}

// NewTransferer returns the SHFileOperationW transferer. The shell shows its
// own progress and overwrite dialogs, so p is not used.
func NewTransferer(p Prompter) Transferer {
	return shellTransferer{}
}

func (shellTransferer) Transfer(ctx context.Context, sources []string, dest string, op Operation) Result {
	if err := ctx.Err(); err != nil {
		return Result{Aborted: true}
	}

	from, err := doubleNulList(sources)
	if err != nil {
		return Result{Err: err}
	}
	to, err := doubleNulList([]string{dest})
	if err != nil {
		return Result{Err: err}
	}

	fn := uint32(foCopy)
	if op == Move {
		fn = foMove
	}

	if err := procSHFileOperationW.Find(); err != nil {
		return Result{Err: err}
	}
	fileOp := shFileOpStruct{
		wFunc:  fn,
		pFrom:  &from[0],
		pTo:    &to[0],
		fFlags: fofNoConfirmMkdir,
	}
	r, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&fileOp)))
	slog.Debug("SHFileOperationW", "result", fmt.Sprintf("0x%x", r), "aborted", fileOp.fAnyOperationsAborted)

	return Result{
		Code:    uint32(r),
		Aborted: fileOp.fAnyOperationsAborted != 0,
	}
}

// doubleNulList encodes paths as NUL-separated UTF-16 ending in two NULs
func doubleNulList(paths []string) ([]uint16, error) {
	var buf []uint16
	for _, p := range paths {
		u, err := windows.UTF16FromString(p)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", p, err)
		}
		buf = append(buf, u...)
	}
	return append(buf, 0), nil
}
