package hotkey

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"style-watcher/pkg/core"
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// HyprlandBinder registers chords as Hyprland binds that exec a command.
// Binds made through it are removed by UnbindAll.
type HyprlandBinder struct {
	run runFunc
	log core.Logger

	mu    sync.Mutex
	bound []Chord
}

func NewHyprlandBinder(log core.Logger) (*HyprlandBinder, error) {
	path, err := exec.LookPath("hyprctl")
	if err != nil {
		return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
	}
	log.Debug("Found hyprctl", "path", path)
	return &HyprlandBinder{run: combinedOutput, log: log}, nil
}

func (b *HyprlandBinder) hyprctl(ctx context.Context, args ...string) error {
	out, err := b.run(ctx, "hyprctl", args...)
	text := strings.TrimSpace(string(out))
	if err != nil {
		return fmt.Errorf("hyprctl %s: %w (%s)", strings.Join(args, " "), err, text)
	}
	if text != "ok" {
		return fmt.Errorf("hyprctl %s: %s", strings.Join(args, " "), text)
	}
	return nil
}

// Bind makes the compositor run command when chord is pressed.
func (b *HyprlandBinder) Bind(ctx context.Context, chord Chord, command string) error {
	bind := fmt.Sprintf("%s,%s,exec,%s", chord.hyprMods(), chord.hyprKey(), command)
	b.log.Debug("Adding keybinding", "bind", bind)

	if err := b.hyprctl(ctx, "keyword", "bind", bind); err != nil {
		return fmt.Errorf("failed to add keybinding %s: %w", chord, err)
	}

	b.mu.Lock()
	b.bound = append(b.bound, chord)
	b.mu.Unlock()

	b.log.Info("Keybinding added", "hotkey", chord.String())
	return nil
}

// UnbindAll removes every bind made by Bind.
func (b *HyprlandBinder) UnbindAll(ctx context.Context) error {
	b.mu.Lock()
	bound := b.bound
	b.bound = nil
	b.mu.Unlock()

	var firstErr error
	for _, chord := range bound {
		bind := fmt.Sprintf("%s,%s", chord.hyprMods(), chord.hyprKey())
		if err := b.hyprctl(ctx, "keyword", "unbind", bind); err != nil {
			b.log.Error("Failed to remove keybinding", err, "hotkey", chord.String())
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		b.log.Debug("Keybinding removed", "hotkey", chord.String())
	}
	return firstErr
}

// ShellQuote quotes s for the sh -c that Hyprland runs exec binds through.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
