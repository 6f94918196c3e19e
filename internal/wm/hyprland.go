package wm

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"style-watcher/pkg/core"
)

type Hyprland struct {
	log        core.Logger
	lastActive Window
	pinned     sync.Once
	pinErr     error
}

func NewHyprland(log core.Logger) (*Hyprland, error) {
	// Check if hyprctl is available
	path, err := exec.LookPath("hyprctl")
	if err != nil {
		log.Error("hyprctl not found in PATH", err)
		return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
	}
	log.Debug("Found hyprctl", "path", path)

	return &Hyprland{log: log}, nil
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

func (h *Hyprland) ActiveWindow() (Window, error) {
	output, err := exec.Command("hyprctl", "activewindow", "-j").CombinedOutput()
	if err != nil {
		h.log.Error("Failed to execute hyprctl", err, "output", string(output))
		return Window{}, fmt.Errorf("hyprctl error: %w", err)
	}

	w, err := parseHyprlandActive(output)
	if err != nil {
		h.log.Error("Failed to parse hyprctl output", err, "output", string(output))
		return Window{}, err
	}

	// Only log if this is a different window than last time
	if w != h.lastActive {
		h.log.Debug("Active window changed",
			"class", w.Class,
			"title", w.Title,
			"address", w.Address)
		h.lastActive = w
	}
	return w, nil
}

func parseHyprlandActive(output []byte) (Window, error) {
	var active struct {
		Address string `json:"address"`
		Class   string `json:"class"`
		Title   string `json:"title"`
	}

	// hyprctl prints nothing or {} when nothing is focused
	if len(output) == 0 {
		return Window{}, nil
	}
	if err := json.Unmarshal(output, &active); err != nil {
		return Window{}, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}

	return Window{
		Class:   active.Class,
		Title:   active.Title,
		Address: active.Address,
	}, nil
}

// KeepOnTop adds float and pin window rules for the title. Rules apply to
// windows opened later, so this runs once, before the window is first shown.
func (h *Hyprland) KeepOnTop(title string) error {
	h.pinned.Do(func() {
		match := fmt.Sprintf("title:^(%s)$", regexp.QuoteMeta(title))
		for _, rule := range []string{"float", "pin"} {
			output, err := exec.Command("hyprctl", "keyword", "windowrulev2", rule+","+match).CombinedOutput()
			if err == nil && strings.TrimSpace(string(output)) != "ok" {
				err = fmt.Errorf("%s", strings.TrimSpace(string(output)))
			}
			if err != nil {
				h.pinErr = fmt.Errorf("failed to add %s rule: %w", rule, err)
				return
			}
		}
		h.log.Debug("Window rules added", "title", title)
	})
	return h.pinErr
}
