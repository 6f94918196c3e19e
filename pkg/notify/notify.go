package notify

import (
	"fmt"
	"os/exec"
	"sync"

	"style-watcher/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
	// Warning is for recoverable problems the user should act on, such as a
	// hotkey that still has to be bound.
	Warning
)

func (t NotificationType) String() string {
	switch t {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	default:
		return "INFO"
	}
}

const defaultTitle = "StyleWatcher"

// NotifyService handles system notifications
type NotifyService struct {
	log           *logger.Logger
	notifyCommand string
	title         string

	lookPath func(string) (string, error)
	run      func(name string, args ...string) error

	detectOnce sync.Once
	tool       *notificationTool
	toolPath   string
}

// NewNotifyService creates a new notification service
func NewNotifyService(notifyCommand string, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
		title:         defaultTitle,
		lookPath:      exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Show displays a notification of the specified type
func (n *NotifyService) Show(message string, nType NotificationType) error {
	// First try configured notification command if available
	if n.notifyCommand != "" {
		if err := n.executeNotifyCommand(message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	// Try system notification tools
	if err := n.trySystemNotification(n.title, message, nType); err == nil {
		return nil
	}

	// If running in terminal, print directly
	if isRunningInTerminal() {
		return n.printToTerminal(n.title, message, nType)
	}

	// Last resort: log file
	return n.writeToLogFile(n.title, message, nType)
}

func (n *NotifyService) executeNotifyCommand(message string, nType NotificationType) error {
	n.log.Debug("Executing notify command", "notify_command", n.notifyCommand,
		"type", nType.String())
	// Arguments go through "$1"/"$2" so the message is never shell-interpreted.
	cmd := exec.Command("sh", "-c", fmt.Sprintf(`%s "$1" "$2"`, n.notifyCommand), "notify", nType.String(), message)
	return cmd.Run()
}
