//go:build !windows

package hotkey

import "style-watcher/pkg/core"

type Listener struct{}

func Listen(chord Chord, fn func(), log core.Logger) (*Listener, error) {
	return nil, ErrUnsupported
}

func (l *Listener) Close() error {
	return nil
}
