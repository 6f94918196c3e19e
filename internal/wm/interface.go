package wm

type WindowManager interface {
	// ActiveWindow returns the window that currently has focus
	ActiveWindow() (Window, error)
	// KeepOnTop keeps windows with the given title above others
	KeepOnTop(title string) error
	// Name returns the WM name for logging/display
	Name() string
}

type Window struct {
	ID      string
	Class   string
	Title   string
	Address string // For Hyprland
}

// Label is a short description for logs and history.
func (w Window) Label() string {
	switch {
	case w.Class != "" && w.Title != "":
		return w.Class + ": " + w.Title
	case w.Class != "":
		return w.Class
	default:
		return w.Title
	}
}
