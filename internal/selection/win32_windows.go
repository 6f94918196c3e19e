//go:build windows

package selection

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"style-watcher/pkg/core"
)

const (
	wmGetText       = 0x000D
	wmGetTextLength = 0x000E
	emGetSel        = 0x00B0
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procAttachThreadInput = user32.NewProc("AttachThreadInput")
	procGetFocus          = user32.NewProc("GetFocus")
	procSendMessageW      = user32.NewProc("SendMessageW")
)

var errNoFocus = errors.New("no focused control")

// Win32Source asks the focused control of the foreground window for its
// selection with edit-control messages.
type Win32Source struct {
	log core.Logger
}

func NewWin32Source(log core.Logger) *Win32Source {
	return &Win32Source{log: log}
}

func (s *Win32Source) Name() string {
	return "win32"
}

func (s *Win32Source) Selection(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// AttachThreadInput binds the calling OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd, err := s.focusedControl()
	if err != nil {
		return "", err
	}

	var start, end uint32
	procSendMessageW.Call(uintptr(hwnd), emGetSel,
		uintptr(unsafe.Pointer(&start)), uintptr(unsafe.Pointer(&end)))

	n, _, _ := procSendMessageW.Call(uintptr(hwnd), wmGetTextLength, 0, 0)
	if n == 0 {
		return "", ErrNoSelection
	}

	buf := make([]uint16, n+1)
	got, _, _ := procSendMessageW.Call(uintptr(hwnd), wmGetText, uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	text := buf[:min(int(got), int(n))]

	sel := sliceSelection(text, int(start), int(end))
	if len(sel) == 0 {
		return "", ErrNoSelection
	}
	return windows.UTF16ToString(sel), nil
}

// focusedControl returns the control with keyboard focus in the foreground
// window. The input queues stay attached only for the GetFocus call.
func (s *Win32Source) focusedControl() (windows.HWND, error) {
	fg := windows.GetForegroundWindow()
	if fg == 0 {
		return 0, errors.New("no foreground window")
	}

	var pid uint32
	target, err := windows.GetWindowThreadProcessId(fg, &pid)
	if err != nil {
		return 0, fmt.Errorf("failed to get window thread: %w", err)
	}
	self := windows.GetCurrentThreadId()

	if target != self {
		r, _, callErr := procAttachThreadInput.Call(uintptr(self), uintptr(target), 1)
		if r == 0 {
			return 0, fmt.Errorf("failed to attach thread input: %w", callErr)
		}
		defer procAttachThreadInput.Call(uintptr(self), uintptr(target), 0)
	}

	focus, _, _ := procGetFocus.Call()
	if focus == 0 {
		return 0, errNoFocus
	}
	return windows.HWND(focus), nil
}
