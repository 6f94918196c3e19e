package ui

import (
	"fmt"
	"strings"

	"style-watcher/internal/models"
)

// summaryLines are the headline labels above the tabs.
func summaryLines(p models.ParsedPayload) (title, yesterday, sevenDay string) {
	title = p.Title
	if title == "" {
		title = "-"
	}
	yesterday = p.Yesterday
	if yesterday == "" {
		yesterday = "-"
	}
	sevenDay = "7-day total: -"
	if p.SevenDayTotal != nil {
		sevenDay = fmt.Sprintf("7-day total: %d", *p.SevenDayTotal)
	}
	return title, yesterday, sevenDay
}

// topList renders a top-N view as "key  qty" lines.
func topList(totals []models.KeyTotal) string {
	if len(totals) == 0 {
		return "(no data)"
	}
	var b strings.Builder
	for i, t := range totals {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%2d. %s  %d", i+1, t.Key, t.Quantity)
	}
	return b.String()
}

var detailHeader = [...]string{"Date", "Item", "Size", "Color", "Qty"}

func detailCell(rows []models.DetailRow, row, col int) string {
	if row == 0 {
		return detailHeader[col]
	}
	r := rows[row-1]
	switch col {
	case 0:
		return r.Date
	case 1:
		return r.ItemName
	case 2:
		return r.Size
	case 3:
		return r.Color
	default:
		return fmt.Sprintf("%d", r.Quantity)
	}
}

func historyLabel(e models.HistoryEntry) string {
	title := e.Title
	if title == "" {
		title = "(no title)"
	}
	return fmt.Sprintf("%s  %s  %s  [%d]",
		e.CreatedAt.Local().Format("01-02 15:04"), e.InputText, title, e.RecordCount)
}
