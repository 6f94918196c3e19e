package ui

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"style-watcher/pkg/core"
)

const debugMaxLines = 1000

// DebugPanel represents the debug window and its components
type DebugPanel struct {
	window    fyne.Window
	textArea  *widget.TextGrid
	logger    core.Logger
	mu        sync.Mutex
	content   []string
	isVisible bool
}

func NewDebugPanel(a fyne.App, log core.Logger) *DebugPanel {
	dp := &DebugPanel{
		logger:  log,
		content: make([]string, 0),
	}

	dp.window = a.NewWindow(WindowTitle + " debug")
	dp.textArea = widget.NewTextGrid()

	testBtn := widget.NewButton("Test Log", func() {
		dp.logger.Debug("Test log entry from debug panel")
	})
	clearBtn := widget.NewButton("Clear", func() {
		dp.Clear()
	})

	content := container.NewBorder(
		container.NewHBox(testBtn, clearBtn),
		nil,
		nil,
		nil,
		container.NewScroll(dp.textArea),
	)

	dp.window.SetContent(content)
	dp.window.Resize(fyne.NewSize(800, 600))
	dp.window.SetCloseIntercept(func() {
		dp.Hide()
	})

	dp.AddText("Debug Panel Initialized")
	return dp
}

func (dp *DebugPanel) AddText(text string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.content = appendCapped(dp.content, text, debugMaxLines)
	if dp.textArea != nil {
		dp.textArea.SetText(strings.Join(dp.content, "\n"))
	}
}

// appendCapped appends line and keeps only the last max lines.
func appendCapped(lines []string, line string, max int) []string {
	lines = append(lines, line)
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}

func (dp *DebugPanel) Clear() {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.content = make([]string, 0)
	if dp.textArea != nil {
		dp.textArea.SetText("")
	}
}

func (dp *DebugPanel) Show() {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.isVisible = true
	dp.window.Show()
}

func (dp *DebugPanel) Hide() {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.isVisible = false
	dp.window.Hide()
}

func (dp *DebugPanel) IsVisible() bool {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return dp.isVisible
}

// DebugWriter feeds log output into a DebugPanel.
type DebugWriter struct {
	panel interface{ AddText(string) }
}

func NewDebugWriter(panel *DebugPanel) *DebugWriter {
	return &DebugWriter{panel: panel}
}

func (w *DebugWriter) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(strings.TrimSpace(string(p)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			w.panel.AddText(line)
		}
	}
	return len(p), nil
}
