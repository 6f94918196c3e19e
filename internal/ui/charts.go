package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"style-watcher/internal/models"
)

const (
	chartWidth  = 520
	chartHeight = 240
)

// blank is shown when there is nothing to plot or a chart fails to render.
func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

func decode(buf *bytes.Buffer, w, h int) (image.Image, error) {
	img, err := png.Decode(buf)
	if err != nil {
		return blank(w, h), fmt.Errorf("decoding chart: %w", err)
	}
	return img, nil
}

// renderDaily draws the daily series as a line with a dot per day. A nil
// series gives a blank image.
func renderDaily(series []models.DayTotal, w, h int) (image.Image, error) {
	if len(series) == 0 {
		return blank(w, h), nil
	}

	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	maxY := 1.0
	for i, d := range series {
		xs[i] = d.Date
		ys[i] = float64(d.Quantity)
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	ticks := make([]chart.Tick, len(series))
	for i, d := range series {
		ticks[i] = chart.Tick{Value: chart.TimeToFloat64(d.Date), Label: d.Date.Format("01-02")}
	}

	ch := chart.Chart{
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 16, Left: 12, Right: 16, Bottom: 8}},
		XAxis:      chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "qty",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return blank(w, h), fmt.Errorf("rendering daily chart: %w", err)
	}
	return decode(&buf, w, h)
}

// renderTop draws a top-N view as bars. An empty view gives a blank image.
func renderTop(totals []models.KeyTotal, w, h int) (image.Image, error) {
	if len(totals) == 0 {
		return blank(w, h), nil
	}

	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{Value: float64(t.Quantity), Label: t.Key})
	}

	barWidth := (w - 80) / (2 * len(bars))
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 8 {
		barWidth = 8
	}

	bc := chart.BarChart{
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 8, Right: 8, Bottom: 8}},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return blank(w, h), fmt.Errorf("rendering top chart: %w", err)
	}
	return decode(&buf, w, h)
}
