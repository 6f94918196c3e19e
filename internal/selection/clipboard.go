package selection

import (
	"context"
	"fmt"
	"time"

	"style-watcher/internal/clipboard"
	"style-watcher/internal/input"
	"style-watcher/pkg/core"
)

// DefaultSettleDelay is how long the target application gets to fill the
// clipboard after the synthetic copy.
const DefaultSettleDelay = 120 * time.Millisecond

// ClipboardSource sends the copy shortcut and reads the clipboard back. The
// user's clipboard is restored afterwards whatever happens.
type ClipboardSource struct {
	cb     clipboard.Clipboard
	port   input.Port
	settle time.Duration
	log    core.Logger
}

func NewClipboardSource(cb clipboard.Clipboard, port input.Port, settle time.Duration, log core.Logger) *ClipboardSource {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &ClipboardSource{cb: cb, port: port, settle: settle, log: log}
}

func (s *ClipboardSource) Name() string {
	return "clipboard"
}

func (s *ClipboardSource) Selection(ctx context.Context) (string, error) {
	var text string

	err := clipboard.WithSnapshot(ctx, s.cb, s.log, func(snap *clipboard.Snapshot) error {
		// Without a selection the copy leaves the clipboard alone; clear it
		// so old content is not mistaken for a selection. Only a restorable
		// clipboard may be cleared.
		if snap.Valid() {
			if err := s.cb.WriteText(ctx, ""); err != nil {
				s.log.Debug("Could not clear clipboard before copy", "error", err)
			}
		}

		if err := s.port.SendCopy(); err != nil {
			return err
		}

		if err := sleep(ctx, s.settle); err != nil {
			return fmt.Errorf("settle delay interrupted: %w", err)
		}

		got, err := s.cb.ReadText(ctx)
		if err != nil {
			return err
		}
		text = got
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
