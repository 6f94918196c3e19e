//go:build windows

package input

import (
	"strings"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

var virtualKeys = map[string]uintptr{
	"alt":   0x12, // VK_MENU
	"ctrl":  0x11, // VK_CONTROL
	"shift": 0x10, // VK_SHIFT
	"cmd":   0x5B, // VK_LWIN
	"super": 0x5B,
}

func keyHeld(key string) bool {
	vk, ok := virtualKeys[strings.ToLower(key)]
	if !ok {
		return false
	}
	if err := procGetAsyncKeyState.Find(); err != nil {
		return false
	}
	r, _, _ := procGetAsyncKeyState.Call(vk)
	return uint16(r)&0x8000 != 0
}
