package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-watcher/internal/models"
	"style-watcher/internal/throttle"
	"style-watcher/internal/wm"
	"style-watcher/pkg/logger"
)

const samplePayload = `{"msg":"商品A 昨日销量:5\\n近7天销量汇总:120\\n2025-10-20 商品A M 红色: 3件\\n2025-10-21 商品A L 蓝色: 7件"}`

type fakeRenderer struct {
	mu      sync.Mutex
	loading []string
	results []models.Result
	shows   int
}

func (r *fakeRenderer) SetLoading(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = append(r.loading, msg)
}

func (r *fakeRenderer) ApplyResult(result models.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *fakeRenderer) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shows++
}

func (r *fakeRenderer) lastLoading() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.loading) == 0 {
		return ""
	}
	return r.loading[len(r.loading)-1]
}

type fakeCapturer struct {
	text    string
	panic   bool
	entered chan struct{}
	block   chan struct{}
	calls   int
}

func (c *fakeCapturer) Capture(ctx context.Context, budget time.Duration) string {
	c.calls++
	if c.block != nil {
		close(c.entered)
		<-c.block
	}
	if c.panic {
		panic("selection exploded")
	}
	return c.text
}

type fakeQuerier struct {
	body  string
	err   error
	texts []string
}

func (q *fakeQuerier) Query(ctx context.Context, text string) (string, error) {
	q.texts = append(q.texts, text)
	return q.body, q.err
}

type fakeGuard struct {
	mu       sync.Mutex
	released []string
}

func (g *fakeGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.released = append(g.released, key)
}

type fakeHistory struct {
	entries []models.HistoryEntry
	err     error
}

func (h *fakeHistory) AddEntry(e models.HistoryEntry) (int64, error) {
	h.entries = append(h.entries, e)
	return int64(len(h.entries)), h.err
}

type fakeWindows struct{}

func (fakeWindows) ActiveWindow() (wm.Window, error) {
	return wm.Window{Class: "firefox", Title: "Orders"}, nil
}

type fixture struct {
	pipeline *Pipeline
	renderer *fakeRenderer
	capturer *fakeCapturer
	querier  *fakeQuerier
	guard    *fakeGuard
	history  *fakeHistory
}

func newFixture(selection, body string, queryErr error) *fixture {
	f := &fixture{
		renderer: &fakeRenderer{},
		capturer: &fakeCapturer{text: selection},
		querier:  &fakeQuerier{body: body, err: queryErr},
		guard:    &fakeGuard{},
		history:  &fakeHistory{},
	}
	f.pipeline = NewPipeline(PipelineDeps{
		Throttle:  throttle.New(time.Nanosecond),
		Guard:     f.guard,
		Modifiers: []string{"alt"},
		Capturer:  f.capturer,
		Querier:   f.querier,
		Renderer:  f.renderer,
		TopN:      10,
		History:   f.history,
		Windows:   fakeWindows{},
		Log:       logger.Nop(),
	})
	return f
}

func TestCaptureCycle(t *testing.T) {
	f := newFixture("K-1001", samplePayload, nil)

	f.pipeline.OnCaptureTriggered(context.Background())

	assert.Equal(t, []string{"K-1001"}, f.querier.texts)
	assert.Equal(t, []string{LoadingMessage}, f.renderer.loading)
	require.Len(t, f.renderer.results, 1)

	res := f.renderer.results[0]
	assert.Equal(t, "K-1001", res.InputText)
	assert.Equal(t, "商品A", res.Payload.Title)
	require.NotNil(t, res.Payload.SevenDayTotal)
	assert.Equal(t, 120, *res.Payload.SevenDayTotal)
	assert.Equal(t, []models.KeyTotal{{Key: "L", Quantity: 7}, {Key: "M", Quantity: 3}}, res.TopSizes)
	assert.Len(t, res.Daily, 7)
	assert.Equal(t, "2025-10-21", res.Details[0].Date)

	assert.Equal(t, []string{"alt", "alt"}, f.guard.released, "released before and after the cycle")

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, "firefox: Orders", f.history.entries[0].Source)
	assert.Equal(t, 2, f.history.entries[0].RecordCount)
}

func TestCaptureMiss(t *testing.T) {
	f := newFixture("", samplePayload, nil)

	f.pipeline.OnCaptureTriggered(context.Background())

	assert.Empty(t, f.querier.texts)
	assert.Equal(t, NoSelectionMessage, f.renderer.lastLoading())
	assert.Empty(t, f.renderer.results)
	assert.Equal(t, 1, f.renderer.shows)
	assert.Len(t, f.guard.released, 2)
}

func TestTransportFailure(t *testing.T) {
	f := newFixture("K-1001", "", errors.New("connection refused"))

	f.pipeline.OnCaptureTriggered(context.Background())

	require.Len(t, f.renderer.results, 1)
	res := f.renderer.results[0]
	assert.Equal(t, "Request failed: connection refused", res.RawText)
	assert.Empty(t, res.Payload.Records)
	assert.Nil(t, res.Daily)
	assert.Empty(t, f.history.entries)
}

func TestMalformedResponseShowsRawText(t *testing.T) {
	f := newFixture("K-1001", "<html>maintenance</html>\r\n", nil)

	f.pipeline.OnCaptureTriggered(context.Background())

	require.Len(t, f.renderer.results, 1)
	res := f.renderer.results[0]
	assert.Equal(t, "<html>maintenance</html>", res.RawText)
	assert.Empty(t, res.Payload.Title)
	assert.Empty(t, res.TopSizes)
	assert.Nil(t, res.Daily)
}

func TestPanicBecomesErrorState(t *testing.T) {
	f := newFixture("K-1001", samplePayload, nil)
	f.capturer.panic = true

	assert.NotPanics(t, func() { f.pipeline.OnCaptureTriggered(context.Background()) })
	assert.Equal(t, "Error: selection exploded", f.renderer.lastLoading())
	assert.Len(t, f.guard.released, 2)

	// the gate was released, so the next trigger runs
	f.capturer.panic = false
	f.pipeline.OnCaptureTriggered(context.Background())
	assert.Len(t, f.renderer.results, 1)
}

func TestBusyTriggerShowsWindow(t *testing.T) {
	f := newFixture("K-1001", samplePayload, nil)
	f.capturer.entered = make(chan struct{})
	f.capturer.block = make(chan struct{})

	done := make(chan struct{})
	go func() {
		f.pipeline.OnCaptureTriggered(context.Background())
		close(done)
	}()

	<-f.capturer.entered
	time.Sleep(time.Millisecond)
	f.pipeline.OnCaptureTriggered(context.Background())

	f.renderer.mu.Lock()
	shows := f.renderer.shows
	f.renderer.mu.Unlock()
	assert.Equal(t, 1, shows, "busy trigger surfaces the window")

	close(f.capturer.block)
	<-done
	assert.Equal(t, 1, f.capturer.calls)
	assert.Len(t, f.renderer.results, 1)
}

func TestDebouncedTriggerIsDropped(t *testing.T) {
	f := newFixture("K-1001", samplePayload, nil)
	f.pipeline.Throttle = throttle.New(time.Hour)

	f.pipeline.OnCaptureTriggered(context.Background())
	f.pipeline.OnCaptureTriggered(context.Background())

	assert.Equal(t, 1, f.capturer.calls)
	assert.Equal(t, 1, f.renderer.shows)
}

func TestQueryText(t *testing.T) {
	f := newFixture("", samplePayload, nil)

	f.pipeline.QueryText(context.Background(), "  K-7  ")
	f.pipeline.QueryText(context.Background(), "   ")

	assert.Equal(t, []string{"K-7"}, f.querier.texts)
	assert.Equal(t, EmptyInputMessage, f.renderer.lastLoading())
	assert.Empty(t, f.guard.released, "manual queries send no synthetic input")
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, "manual", f.history.entries[0].Source)
}

func TestRestore(t *testing.T) {
	f := newFixture("", "", nil)

	f.pipeline.Restore(models.HistoryEntry{
		InputText: "K-1",
		RawText:   "2025-10-21 商品A L 蓝色: 7件",
	})

	require.Len(t, f.renderer.results, 1)
	assert.Equal(t, "K-1", f.renderer.results[0].InputText)
	assert.Len(t, f.renderer.results[0].Payload.Records, 1)
	assert.Empty(t, f.querier.texts)
}
