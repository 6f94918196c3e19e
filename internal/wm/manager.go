package wm

import (
	"fmt"

	"style-watcher/pkg/core"
)

// Manager handles window management operations based on the session type
type Manager struct {
	wm      WindowManager
	session Session
	log     core.Logger
}

// NewManager creates a new window manager based on the session type
func NewManager(session Session, log core.Logger) (*Manager, error) {
	log.Info("Session type detected", "session", string(session))

	var wm WindowManager
	var err error

	switch session {
	case SessionHyprland:
		log.Debug("Initializing compositor support", "type", "Hyprland")
		wm, err = NewHyprland(log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Hyprland support: %w", err)
		}
	case SessionX11:
		log.Debug("Initializing compositor support", "type", "X11")
		wm, err = NewX11()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize X11 support: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported session type: %s", session)
	}

	log.Info("Window manager initialized", "name", wm.Name())
	return &Manager{wm: wm, session: session, log: log}, nil
}

// ActiveWindow wraps the underlying window manager's ActiveWindow method
func (m *Manager) ActiveWindow() (Window, error) {
	return m.wm.ActiveWindow()
}

// KeepOnTop wraps the underlying window manager's KeepOnTop method
func (m *Manager) KeepOnTop(title string) error {
	return m.wm.KeepOnTop(title)
}

// GetWMName returns the name of the current window manager
func (m *Manager) GetWMName() string {
	return m.wm.Name()
}

func (m *Manager) Session() Session {
	return m.session
}
