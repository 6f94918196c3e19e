package notify

import (
	"fmt"
	"os"
	"strconv"
)

// style is how loud a notification of one type should be.
type style struct {
	urgency   string // freedesktop urgency: low, normal, critical
	timeoutMs int    // 0 keeps the notification until dismissed
	hyprIcon  int    // hyprctl notify icon index
	zenity    string // zenity dialog flag
}

var styles = map[NotificationType]style{
	Info:    {urgency: "low", timeoutMs: 4000, hyprIcon: 1, zenity: "--notification"},
	Warning: {urgency: "normal", timeoutMs: 8000, hyprIcon: 0, zenity: "--notification"},
	Error:   {urgency: "critical", timeoutMs: 0, hyprIcon: 3, zenity: "--error"},
}

func styleFor(nType NotificationType) style {
	if s, ok := styles[nType]; ok {
		return s
	}
	return styles[Info]
}

type notificationTool struct {
	name string
	// usable reports whether the tool works in this session beyond being on PATH.
	usable func() bool
	args   func(title, message string, nType NotificationType) []string
}

// notificationTools are tried in order; the first usable one is kept.
var notificationTools = []notificationTool{
	{
		// Hyprland's own overlay needs no notification daemon.
		name:   "hyprctl",
		usable: func() bool { return os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" },
		args: func(title, message string, nType NotificationType) []string {
			s := styleFor(nType)
			timeout := s.timeoutMs
			if timeout == 0 {
				timeout = 15000
			}
			return []string{"notify", strconv.Itoa(s.hyprIcon), strconv.Itoa(timeout), "0", title + ": " + message}
		},
	},
	{
		name: "dunstify",
		args: func(title, message string, nType NotificationType) []string {
			s := styleFor(nType)
			// replace the previous StyleWatcher notice instead of stacking
			return []string{"-r", "7731", "-u", s.urgency, "-t", strconv.Itoa(s.timeoutMs), "-a", title, title, message}
		},
	},
	{
		name: "notify-send",
		args: func(title, message string, nType NotificationType) []string {
			s := styleFor(nType)
			return []string{"-u", s.urgency, "-t", strconv.Itoa(s.timeoutMs), "-a", title, title, message}
		},
	},
	{
		name: "zenity",
		args: func(title, message string, nType NotificationType) []string {
			return []string{styleFor(nType).zenity, "--text", message, "--title", title}
		},
	},
}

// detectTool finds the first usable tool once; later calls reuse the result.
func (n *NotifyService) detectTool() (*notificationTool, string) {
	n.detectOnce.Do(func() {
		for i := range notificationTools {
			tool := &notificationTools[i]
			if tool.usable != nil && !tool.usable() {
				continue
			}
			path, err := n.lookPath(tool.name)
			if err != nil {
				continue
			}
			n.tool, n.toolPath = tool, path
			n.log.Debug("Notification tool selected", "tool", tool.name, "path", path)
			return
		}
		n.log.Debug("No notification tool found")
	})
	return n.tool, n.toolPath
}

func (n *NotifyService) trySystemNotification(title string, message string, nType NotificationType) error {
	tool, path := n.detectTool()
	if tool == nil {
		return fmt.Errorf("no notification tools available")
	}
	if err := n.run(path, tool.args(title, message, nType)...); err != nil {
		return fmt.Errorf("%s failed: %w", tool.name, err)
	}
	n.log.Debug("Notification sent successfully",
		"tool", tool.name,
		"type", nType.String())
	return nil
}
