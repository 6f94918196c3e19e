package selection

import (
	"time"

	"style-watcher/internal/clipboard"
	"style-watcher/internal/input"
	"style-watcher/pkg/core"
)

// Options carries what the platform sources need.
type Options struct {
	Clipboard   clipboard.Clipboard
	Port        input.Port
	SettleDelay time.Duration
	// Wayland selects wl-paste over xclip for the PRIMARY selection.
	Wayland bool
	Log     core.Logger
}

// DefaultSources returns the sources for this platform, highest priority
// first. The clipboard round trip is always last.
func DefaultSources(opts Options) []Source {
	sources := platformSources(opts)
	return append(sources, NewClipboardSource(opts.Clipboard, opts.Port, opts.SettleDelay, opts.Log))
}
