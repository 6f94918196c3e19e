// Package analytics derives the presentation views from parsed sales records.
package analytics

import (
	"sort"
	"time"

	"style-watcher/internal/models"
)

const (
	// DefaultTopN caps a top-N view when no explicit size is given.
	DefaultTopN = 10

	// SeriesDays is the length of the daily series.
	SeriesDays = 7

	detailDateLayout = "2006-01-02"
)

// KeyFunc picks the grouping key of a record.
type KeyFunc func(models.SaleRecord) string

// BySize groups records by size.
func BySize(r models.SaleRecord) string { return r.Size }

// ByColor groups records by color.
func ByColor(r models.SaleRecord) string { return r.Color }

func keyOrUnknown(k string) string {
	if k == "" {
		return models.UnknownKey
	}
	return k
}

// TopBy sums quantities per key and returns the n largest groups, largest
// first. Groups with equal totals keep the order in which they were first
// seen. Empty keys are reported as models.UnknownKey.
func TopBy(records []models.SaleRecord, key KeyFunc, n int) []models.KeyTotal {
	if n <= 0 {
		n = DefaultTopN
	}

	totals := make([]models.KeyTotal, 0)
	index := make(map[string]int)
	for _, r := range records {
		k := keyOrUnknown(key(r))
		i, ok := index[k]
		if !ok {
			i = len(totals)
			index[k] = i
			totals = append(totals, models.KeyTotal{Key: k})
		}
		totals[i].Quantity += r.Quantity
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Quantity > totals[j].Quantity
	})

	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// TopBySize is TopBy grouped by size.
func TopBySize(records []models.SaleRecord, n int) []models.KeyTotal {
	return TopBy(records, BySize, n)
}

// TopByColor is TopBy grouped by color.
func TopByColor(records []models.SaleRecord, n int) []models.KeyTotal {
	return TopBy(records, ByColor, n)
}

// DailySeries returns one entry per day for the SeriesDays days ending at the
// latest record date, with zero for days that have no records. ok is false
// when there are no records at all.
func DailySeries(records []models.SaleRecord) (series []models.DayTotal, ok bool) {
	if len(records) == 0 {
		return nil, false
	}

	sums := make(map[time.Time]int)
	var last time.Time
	for i, r := range records {
		d := calendarDay(r.Date)
		sums[d] += r.Quantity
		if i == 0 || d.After(last) {
			last = d
		}
	}

	series = make([]models.DayTotal, SeriesDays)
	for i := range series {
		d := last.AddDate(0, 0, i-(SeriesDays-1))
		series[i] = models.DayTotal{Date: d, Quantity: sums[d]}
	}
	return series, true
}

// calendarDay drops any time-of-day so grouping is per calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DetailRows formats records for the detail table, newest date first and
// larger quantities first within a day.
func DetailRows(records []models.SaleRecord) []models.DetailRow {
	sorted := make([]models.SaleRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := calendarDay(sorted[i].Date), calendarDay(sorted[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return sorted[i].Quantity > sorted[j].Quantity
	})

	rows := make([]models.DetailRow, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, models.DetailRow{
			Date:     r.Date.Format(detailDateLayout),
			ItemName: r.ItemName,
			Size:     keyOrUnknown(r.Size),
			Color:    keyOrUnknown(r.Color),
			Quantity: r.Quantity,
		})
	}
	return rows
}

// Build runs every aggregation for a parsed payload.
func Build(input, raw string, payload models.ParsedPayload, topN int) models.Result {
	daily, _ := DailySeries(payload.Records)
	return models.Result{
		InputText: input,
		RawText:   raw,
		Payload:   payload,
		TopSizes:  TopBySize(payload.Records, topN),
		TopColors: TopByColor(payload.Records, topN),
		Daily:     daily,
		Details:   DetailRows(payload.Records),
	}
}
