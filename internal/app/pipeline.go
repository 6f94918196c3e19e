package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"style-watcher/internal/analytics"
	"style-watcher/internal/models"
	"style-watcher/internal/payload"
	"style-watcher/internal/throttle"
	"style-watcher/internal/wm"
	"style-watcher/pkg/core"
)

const (
	NoSelectionMessage = "No selected text found. Select some text first, then press the hotkey."
	EmptyInputMessage  = "Enter a style code to query."
	LoadingMessage     = "Querying..."
)

// Querier sends text to the remote endpoint and returns the raw body.
type Querier interface {
	Query(ctx context.Context, text string) (string, error)
}

// Renderer is the result window.
type Renderer interface {
	SetLoading(msg string)
	ApplyResult(result models.Result)
	Show()
}

// Capturer reads the current selection; "" means nothing was selected.
type Capturer interface {
	Capture(ctx context.Context, budget time.Duration) string
}

// Guard releases modifier keys that are still held.
type Guard interface {
	Release(key string)
}

// History stores finished queries.
type History interface {
	AddEntry(entry models.HistoryEntry) (int64, error)
}

// WindowTracker reports the focused window.
type WindowTracker interface {
	ActiveWindow() (wm.Window, error)
}

type PipelineDeps struct {
	Throttle  *throttle.Throttle
	Guard     Guard
	Modifiers []string // released before and after each capture
	Capturer  Capturer
	Budget    time.Duration
	Querier   Querier
	Parser    *payload.Parser
	Renderer  Renderer
	TopN      int

	// optional
	History History
	Windows WindowTracker

	Log core.Logger
}

// Pipeline runs capture cycles: selection, query, parse, aggregate, render.
// At most one cycle runs at a time.
type Pipeline struct {
	PipelineDeps
}

func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Throttle == nil {
		deps.Throttle = throttle.New(throttle.DefaultDebounce)
	}
	if deps.Parser == nil {
		deps.Parser = payload.NewParser(nil)
	}
	return &Pipeline{PipelineDeps: deps}
}

// OnCaptureTriggered handles one hotkey press. It blocks until the cycle is
// rendered; callers on the UI thread should run it in a goroutine.
func (p *Pipeline) OnCaptureTriggered(ctx context.Context) {
	admission, release := p.Throttle.Admit()
	switch admission {
	case throttle.Debounced:
		p.Log.Debug("Hotkey debounced")
		return
	case throttle.Busy:
		p.Log.Info("Capture already running, surfacing window")
		p.Renderer.Show()
		return
	}
	defer release()

	p.releaseModifiers()
	defer p.releaseModifiers()
	defer p.recoverCycle()

	source := p.activeWindow()
	text := p.Capturer.Capture(ctx, p.Budget)

	p.Renderer.Show()
	if text == "" {
		p.Log.Info("Capture found no selection", "window", source)
		p.Renderer.SetLoading(NoSelectionMessage)
		return
	}

	p.run(ctx, text, source)
}

// QueryText runs a cycle for text typed by the user instead of a selection.
// It shares the single-cycle gate but skips the debounce.
func (p *Pipeline) QueryText(ctx context.Context, text string) {
	if !p.Throttle.TryEnter() {
		p.Log.Info("Query already running, ignoring manual query")
		p.Renderer.Show()
		return
	}
	defer p.Throttle.Exit()
	defer p.recoverCycle()

	text = strings.TrimSpace(text)
	if text == "" {
		p.Renderer.SetLoading(EmptyInputMessage)
		return
	}
	p.run(ctx, text, "manual")
}

// Restore renders a stored history entry without querying again.
func (p *Pipeline) Restore(entry models.HistoryEntry) {
	parsed := p.Parser.Parse(entry.RawText)
	p.Renderer.ApplyResult(analytics.Build(entry.InputText, entry.RawText, parsed, p.TopN))
}

func (p *Pipeline) run(ctx context.Context, text, source string) {
	p.Log.Info("Querying", "length", len(text), "source", source)
	p.Renderer.SetLoading(LoadingMessage)

	body, err := p.Querier.Query(ctx, text)
	if err != nil {
		p.Log.Error("Query failed", err)
		raw := fmt.Sprintf("Request failed: %v", err)
		p.Renderer.ApplyResult(analytics.Build(text, raw, models.ParsedPayload{}, p.TopN))
		return
	}

	raw := payload.Normalize(payload.ExtractMessage(body))
	parsed := p.Parser.Parse(raw)
	result := analytics.Build(text, raw, parsed, p.TopN)

	p.Log.Debug("Parsed response",
		"title", parsed.Title,
		"records", len(parsed.Records),
		"has_seven_day_total", parsed.SevenDayTotal != nil)

	p.Renderer.ApplyResult(result)
	p.record(result, source)
}

func (p *Pipeline) record(result models.Result, source string) {
	if p.History == nil {
		return
	}
	_, err := p.History.AddEntry(models.HistoryEntry{
		InputText:   result.InputText,
		RawText:     result.RawText,
		Title:       result.Payload.Title,
		RecordCount: len(result.Payload.Records),
		Source:      source,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		p.Log.Warn("Failed to store history entry", "error", err)
	}
}

func (p *Pipeline) releaseModifiers() {
	for _, key := range p.Modifiers {
		p.Guard.Release(key)
	}
}

func (p *Pipeline) activeWindow() string {
	if p.Windows == nil {
		return ""
	}
	w, err := p.Windows.ActiveWindow()
	if err != nil {
		p.Log.Debug("Could not read active window", "error", err)
		return ""
	}
	return w.Label()
}

// recoverCycle turns a panic anywhere in the cycle into an error state in
// the window. It must be deferred directly.
func (p *Pipeline) recoverCycle() {
	r := recover()
	if r == nil {
		return
	}
	p.Log.Error("Capture cycle panicked", fmt.Errorf("%v", r))

	defer func() {
		if r2 := recover(); r2 != nil {
			p.Log.Error("Renderer panicked while reporting error", fmt.Errorf("%v", r2))
		}
	}()
	p.Renderer.SetLoading(fmt.Sprintf("Error: %v", r))
	p.Renderer.Show()
}
