// Package clipboard saves and restores the system clipboard around an
// operation that has to overwrite it.
package clipboard

import (
	"context"
	"fmt"

	"github.com/go-vgo/robotgo"

	"style-watcher/pkg/core"
)

// Clipboard is the text clipboard of the desktop session.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// System is the real clipboard, accessed through robotgo.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := robotgo.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}

func (s *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Snapshot is the clipboard content taken by Acquire.
type Snapshot struct {
	cb    Clipboard
	log   core.Logger
	text  string
	valid bool
}

// Acquire reads the current clipboard. A failed read gives a snapshot with
// nothing to restore.
func Acquire(ctx context.Context, cb Clipboard, log core.Logger) *Snapshot {
	s := &Snapshot{cb: cb, log: log}
	text, err := cb.ReadText(ctx)
	if err != nil {
		log.Debug("Clipboard snapshot unavailable", "error", err)
		return s
	}
	s.text = text
	s.valid = true
	return s
}

// Valid reports whether Restore has content to write back. A clipboard
// holding non-text data, such as an image, cannot be snapshotted.
func (s *Snapshot) Valid() bool {
	return s != nil && s.valid
}

// Restore writes the snapshot back. Errors are logged and dropped.
// The write ignores ctx cancellation so an expired budget still restores.
func (s *Snapshot) Restore(ctx context.Context) {
	if s == nil || !s.valid {
		return
	}
	if err := s.cb.WriteText(context.WithoutCancel(ctx), s.text); err != nil {
		s.log.Debug("Clipboard restore failed", "error", err)
	}
}

// WithSnapshot runs fn between Acquire and Restore. Restore runs on every
// exit from fn, a panic included; the panic is re-raised afterwards.
// fn must not write the clipboard when snap is not Valid.
func WithSnapshot(ctx context.Context, cb Clipboard, log core.Logger, fn func(snap *Snapshot) error) error {
	snap := Acquire(ctx, cb, log)
	defer snap.Restore(ctx)
	return fn(snap)
}
