package hotkey

import "errors"

// ErrUnsupported means the platform offers no in-process global hotkey.
// Bind "style-watcher -capture" in the window manager instead.
var ErrUnsupported = errors.New("global hotkeys are not supported on this platform")
