package wm

import (
	"fmt"
	"os/exec"
	"strings"
)

type X11 struct{}

func NewX11() (WindowManager, error) {
	// Check if xdotool is available
	if _, err := exec.LookPath("xdotool"); err != nil {
		return nil, fmt.Errorf("xdotool is required for X11 support but was not found: %w", err)
	}
	return &X11{}, nil
}

func (x *X11) Name() string {
	return "X11"
}

func (x *X11) ActiveWindow() (Window, error) {
	out, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return Window{}, fmt.Errorf("failed to get active window: %w", err)
	}
	windowID := strings.TrimSpace(string(out))
	if windowID == "" {
		return Window{}, nil
	}

	w := Window{ID: windowID}
	if titleOut, err := exec.Command("xdotool", "getwindowname", windowID).Output(); err == nil {
		w.Title = strings.TrimSpace(string(titleOut))
	}
	if classOut, err := exec.Command("xdotool", "getwindowclassname", windowID).Output(); err == nil {
		w.Class = strings.TrimSpace(string(classOut))
	}
	return w, nil
}

// KeepOnTop sets the above state on the window through wmctrl. The window
// has to be mapped already.
func (x *X11) KeepOnTop(title string) error {
	if _, err := exec.LookPath("wmctrl"); err != nil {
		return fmt.Errorf("wmctrl is required to keep windows on top: %w", err)
	}
	if err := exec.Command("wmctrl", "-r", title, "-b", "add,above").Run(); err != nil {
		return fmt.Errorf("failed to keep window on top: %w", err)
	}
	return nil
}
