// Package selection captures the text the user has selected in whatever
// window has focus.
package selection

import (
	"context"
	"errors"
	"strings"
	"time"

	"style-watcher/pkg/core"
)

// DefaultBudget bounds one pass over every source.
const DefaultBudget = 2 * time.Second

// ErrNoSelection is returned by a source that ran fine but found nothing.
var ErrNoSelection = errors.New("no selection")

// Source is one strategy for reading the current selection.
type Source interface {
	Name() string
	Selection(ctx context.Context) (string, error)
}

// Chain tries sources in order and keeps the first non-empty result.
type Chain struct {
	sources []Source
	log     core.Logger
}

func NewChain(log core.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, log: log}
}

// Sources returns the names of the configured sources in priority order.
func (c *Chain) Sources() []string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return names
}

// Capture returns the trimmed selection, or "" when no source produced one.
// Source failures are logged and never returned. budget bounds the whole
// chain; a non-positive budget means DefaultBudget.
func (c *Chain) Capture(ctx context.Context, budget time.Duration) string {
	if budget <= 0 {
		budget = DefaultBudget
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			c.log.Debug("Selection budget spent", "skipped", src.Name(), "error", err)
			break
		}

		text := c.try(ctx, src)
		if text != "" {
			c.log.Debug("Selection captured", "source", src.Name(), "length", len(text))
			return text
		}
	}

	c.log.Debug("No selection found", "sources", strings.Join(c.Sources(), ","))
	return ""
}

func (c *Chain) try(ctx context.Context, src Source) (text string) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Debug("Selection source panicked", "source", src.Name(), "panic", r)
			text = ""
		}
	}()

	raw, err := src.Selection(ctx)
	if err != nil {
		c.log.Debug("Selection source failed", "source", src.Name(), "error", err)
		return ""
	}
	return strings.TrimSpace(raw)
}
