package input

import (
	"fmt"
	"runtime"

	"github.com/go-vgo/robotgo"

	"style-watcher/pkg/core"
)

// DefaultModifier is the modifier of the default Alt+S chord.
const DefaultModifier = "alt"

// Port is the synthetic-input capability the capture pipeline depends on.
type Port interface {
	// IsKeyDown reports whether key currently reads as held.
	IsKeyDown(key string) bool
	// KeyUp synthesizes a release of key.
	KeyUp(key string) error
	// SendCopy synthesizes the platform copy shortcut.
	SendCopy() error
}

// RobotPort drives real keyboard input through robotgo.
type RobotPort struct{}

func NewRobotPort() *RobotPort {
	return &RobotPort{}
}

func (p *RobotPort) IsKeyDown(key string) bool {
	return keyHeld(key)
}

func (p *RobotPort) KeyUp(key string) error {
	if err := robotgo.KeyToggle(key, "up"); err != nil {
		return fmt.Errorf("failed to release %s: %w", key, err)
	}
	return nil
}

func (p *RobotPort) SendCopy() error {
	mod := "ctrl"
	if runtime.GOOS == "darwin" {
		mod = "cmd"
	}
	if err := robotgo.KeyTap("c", mod); err != nil {
		return fmt.Errorf("failed to send copy: %w", err)
	}
	return nil
}

// ModifierGuard keeps a modifier that is still held from the hotkey chord
// from leaking into synthetic input.
type ModifierGuard struct {
	port Port
	log  core.Logger
}

func NewModifierGuard(port Port, log core.Logger) *ModifierGuard {
	return &ModifierGuard{port: port, log: log}
}

// Release lifts key if it reads as held. It never fails.
func (g *ModifierGuard) Release(key string) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Debug("Modifier release panicked", "key", key, "panic", r)
		}
	}()

	if !g.port.IsKeyDown(key) {
		return
	}
	if err := g.port.KeyUp(key); err != nil {
		g.log.Debug("Modifier release failed", "key", key, "error", err)
		return
	}
	g.log.Debug("Released held modifier", "key", key)
}
