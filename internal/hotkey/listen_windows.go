//go:build windows

package hotkey

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"style-watcher/pkg/core"
)

const (
	wmHotkey = 0x0312
	wmQuit   = 0x0012
	hotkeyID = 1
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// Listener owns a system-wide hotkey registration.
type Listener struct {
	threadID uint32
	done     chan struct{}
	once     sync.Once
}

// Listen registers chord system-wide and calls fn on each press until Close.
// fn runs on the listener's thread and must not block.
func Listen(chord Chord, fn func(), log core.Logger) (*Listener, error) {
	l := &Listener{done: make(chan struct{})}
	ready := make(chan error, 1)

	go func() {
		// hotkey messages go to the thread that registered the hotkey
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(l.done)

		r, _, err := procRegisterHotKey.Call(0, hotkeyID, uintptr(chord.winMods()), uintptr(chord.virtualKey()))
		if r == 0 {
			ready <- fmt.Errorf("hotkey %s is unavailable, it may be taken by another program: %w", chord, err)
			return
		}
		defer procUnregisterHotKey.Call(0, hotkeyID)

		l.threadID = windows.GetCurrentThreadId()
		ready <- nil
		log.Info("Hotkey registered", "hotkey", chord.String())

		var m msg
		for {
			r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if int32(r) <= 0 {
				return
			}
			if m.message == wmHotkey && m.wParam == hotkeyID {
				fn()
			}
		}
	}()

	if err := <-ready; err != nil {
		return nil, err
	}
	return l, nil
}

// Close unregisters the hotkey and stops the listener thread.
func (l *Listener) Close() error {
	l.once.Do(func() {
		procPostThreadMessageW.Call(uintptr(l.threadID), wmQuit, 0, 0)
		<-l.done
	})
	return nil
}
