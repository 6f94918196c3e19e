// Package ui is the fyne result window.
package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"style-watcher/internal/models"
	"style-watcher/pkg/config"
	"style-watcher/pkg/core"
)

const WindowTitle = "StyleWatcher"

// HistorySource lists stored queries for the history tab.
type HistorySource interface {
	Recent(limit int) ([]models.HistoryEntry, error)
}

type Callbacks struct {
	// OnQuery runs a manual query for the text in the input box.
	OnQuery func(text string)
	// OnRestore re-renders a history entry.
	OnRestore func(entry models.HistoryEntry)
	// OnShown runs after the window is shown.
	OnShown func()
}

// ResultWindow renders query results. It is safe to call from any goroutine.
type ResultWindow struct {
	window  fyne.Window
	log     core.Logger
	cb      Callbacks
	history HistorySource

	input     *widget.Entry
	status    *widget.Label
	title     *widget.Label
	yesterday *widget.Label
	sevenDay  *widget.Label
	sizes     *widget.Label
	colors    *widget.Label
	raw       *widget.Entry
	details   *widget.Table
	past      *widget.List

	sizeChart  *canvas.Image
	dailyChart *canvas.Image

	mu          sync.Mutex
	detailRows  []models.DetailRow
	pastEntries []models.HistoryEntry
	visible     bool
}

func NewResultWindow(a fyne.App, win config.WindowConfig, history HistorySource, cb Callbacks, log core.Logger) *ResultWindow {
	if win.FontSize > 0 {
		a.Settings().SetTheme(newSizedTheme(win.FontSize))
	}

	rw := &ResultWindow{
		window:  a.NewWindow(WindowTitle),
		log:     log,
		cb:      cb,
		history: history,
	}
	rw.build()

	rw.window.Resize(fyne.NewSize(float32(win.Width), float32(win.Height)))
	rw.window.SetCloseIntercept(func() {
		rw.Hide()
	})
	rw.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			rw.Hide()
		}
	})
	return rw
}

func (rw *ResultWindow) build() {
	rw.input = widget.NewEntry()
	rw.input.SetPlaceHolder("Style code")
	rw.input.OnSubmitted = func(text string) { rw.submit() }

	queryBtn := widget.NewButton("Query", rw.submit)
	copyBtn := widget.NewButton("Copy raw", func() {
		rw.window.Clipboard().SetContent(rw.raw.Text)
	})

	rw.status = widget.NewLabel("Select text and press the hotkey.")
	rw.status.Wrapping = fyne.TextWrapWord

	rw.title = widget.NewLabelWithStyle("-", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	rw.yesterday = widget.NewLabel("-")
	rw.sevenDay = widget.NewLabel("7-day total: -")

	rw.sizes = widget.NewLabel(topList(nil))
	rw.colors = widget.NewLabel(topList(nil))

	rw.sizeChart = canvas.NewImageFromImage(blank(chartWidth, chartHeight))
	rw.sizeChart.FillMode = canvas.ImageFillContain
	rw.sizeChart.SetMinSize(fyne.NewSize(chartWidth/2, chartHeight/2))

	rw.dailyChart = canvas.NewImageFromImage(blank(chartWidth, chartHeight))
	rw.dailyChart.FillMode = canvas.ImageFillContain
	rw.dailyChart.SetMinSize(fyne.NewSize(chartWidth/2, chartHeight/2))

	rw.raw = widget.NewMultiLineEntry()
	rw.raw.Wrapping = fyne.TextWrapWord

	rw.details = widget.NewTable(
		func() (int, int) {
			rw.mu.Lock()
			defer rw.mu.Unlock()
			return len(rw.detailRows) + 1, len(detailHeader)
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			rw.mu.Lock()
			text := detailCell(rw.detailRows, id.Row, id.Col)
			rw.mu.Unlock()
			o.(*widget.Label).SetText(text)
		},
	)
	for col, width := range []float32{110, 220, 70, 100, 60} {
		rw.details.SetColumnWidth(col, width)
	}

	rw.past = widget.NewList(
		func() int {
			rw.mu.Lock()
			defer rw.mu.Unlock()
			return len(rw.pastEntries)
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			rw.mu.Lock()
			defer rw.mu.Unlock()
			if id < len(rw.pastEntries) {
				o.(*widget.Label).SetText(historyLabel(rw.pastEntries[id]))
			}
		},
	)
	rw.past.OnSelected = func(id widget.ListItemID) {
		rw.mu.Lock()
		var entry models.HistoryEntry
		ok := id < len(rw.pastEntries)
		if ok {
			entry = rw.pastEntries[id]
		}
		rw.mu.Unlock()
		rw.past.UnselectAll()
		if ok && rw.cb.OnRestore != nil {
			rw.cb.OnRestore(entry)
		}
	}

	overview := container.NewVScroll(container.NewVBox(
		widget.NewCard("Top sizes", "", container.NewGridWithColumns(2, rw.sizes, rw.sizeChart)),
		widget.NewCard("Top colors", "", rw.colors),
		widget.NewCard("Last 7 days", "", rw.dailyChart),
	))

	historyTab := container.NewTabItem("History", rw.past)
	tabs := container.NewAppTabs(
		container.NewTabItem("Overview", overview),
		container.NewTabItem("Details", rw.details),
		container.NewTabItem("Raw", rw.raw),
		historyTab,
	)
	tabs.OnSelected = func(t *container.TabItem) {
		if t == historyTab {
			rw.refreshHistory()
		}
	}

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(queryBtn, copyBtn), rw.input),
		rw.status,
		rw.title,
		rw.yesterday,
		rw.sevenDay,
	)

	rw.window.SetContent(container.NewBorder(top, nil, nil, nil, tabs))
}

func (rw *ResultWindow) submit() {
	if rw.cb.OnQuery == nil {
		return
	}
	text := rw.input.Text
	go rw.cb.OnQuery(text)
}

// SetLoading shows a status message and clears the previous result, so
// nothing stale stays on screen under it.
func (rw *ResultWindow) SetLoading(msg string) {
	title, yesterday, sevenDay := summaryLines(models.ParsedPayload{})

	rw.status.SetText(msg)
	rw.title.SetText(title)
	rw.yesterday.SetText(yesterday)
	rw.sevenDay.SetText(sevenDay)
	rw.sizes.SetText(topList(nil))
	rw.colors.SetText(topList(nil))
	rw.raw.SetText("")

	rw.mu.Lock()
	rw.detailRows = nil
	rw.mu.Unlock()
	rw.details.Refresh()

	rw.setImage(rw.sizeChart, blank(chartWidth, chartHeight))
	rw.setImage(rw.dailyChart, blank(chartWidth, chartHeight))
}

// ApplyResult replaces everything the window shows.
func (rw *ResultWindow) ApplyResult(res models.Result) {
	title, yesterday, sevenDay := summaryLines(res.Payload)

	rw.input.SetText(res.InputText)
	rw.status.SetText("Done.")
	rw.title.SetText(title)
	rw.yesterday.SetText(yesterday)
	rw.sevenDay.SetText(sevenDay)
	rw.sizes.SetText(topList(res.TopSizes))
	rw.colors.SetText(topList(res.TopColors))
	rw.raw.SetText(res.RawText)

	rw.mu.Lock()
	rw.detailRows = res.Details
	rw.mu.Unlock()
	rw.details.Refresh()

	sizeImg, err := renderTop(res.TopSizes, chartWidth, chartHeight)
	if err != nil {
		rw.log.Warn("Size chart failed", "error", err)
	}
	rw.setImage(rw.sizeChart, sizeImg)

	dailyImg, err := renderDaily(res.Daily, chartWidth, chartHeight)
	if err != nil {
		rw.log.Warn("Daily chart failed", "error", err)
	}
	rw.setImage(rw.dailyChart, dailyImg)
}

func (rw *ResultWindow) setImage(c *canvas.Image, img image.Image) {
	c.Image = img
	c.Refresh()
}

func (rw *ResultWindow) refreshHistory() {
	if rw.history == nil {
		return
	}
	entries, err := rw.history.Recent(50)
	if err != nil {
		rw.log.Warn("Failed to load history", "error", err)
		return
	}
	rw.mu.Lock()
	rw.pastEntries = entries
	rw.mu.Unlock()
	rw.past.Refresh()
}

func (rw *ResultWindow) Show() {
	rw.mu.Lock()
	rw.visible = true
	rw.mu.Unlock()

	rw.window.Show()
	rw.window.RequestFocus()
	if rw.cb.OnShown != nil {
		rw.cb.OnShown()
	}
}

// FocusInput shows the window with the cursor in the input box.
func (rw *ResultWindow) FocusInput() {
	rw.Show()
	rw.window.Canvas().Focus(rw.input)
}

func (rw *ResultWindow) Hide() {
	rw.mu.Lock()
	rw.visible = false
	rw.mu.Unlock()
	rw.window.Hide()
}

// Toggle hides a visible window and shows a hidden one.
func (rw *ResultWindow) Toggle() {
	rw.mu.Lock()
	visible := rw.visible
	rw.mu.Unlock()

	if visible {
		rw.Hide()
		return
	}
	rw.Show()
}
