package wm

import (
	"os"
	"runtime"
)

// Session is the kind of desktop session the process runs in.
type Session string

const (
	SessionHyprland Session = "hyprland"
	SessionWayland  Session = "wayland"
	SessionX11      Session = "x11"
	SessionWindows  Session = "windows"
	SessionUnknown  Session = "unknown"
)

// DetectSession inspects the environment the compositor leaves behind.
func DetectSession() Session {
	if runtime.GOOS == "windows" {
		return SessionWindows
	}
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return SessionHyprland
	}

	sessionType := os.Getenv("XDG_SESSION_TYPE")
	if sessionType == "wayland" || os.Getenv("WAYLAND_DISPLAY") != "" {
		return SessionWayland
	}
	if sessionType == "x11" || os.Getenv("DISPLAY") != "" {
		return SessionX11
	}
	return SessionUnknown
}

// IsWayland reports whether clipboard helpers should use the Wayland tools.
func (s Session) IsWayland() bool {
	return s == SessionHyprland || s == SessionWayland
}
