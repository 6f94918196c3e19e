package models

import "time"

// UnknownKey stands in for an empty size or color in every breakdown.
const UnknownKey = "(unknown)"

// SaleRecord is one dated sales line parsed from a query response.
type SaleRecord struct {
	Date     time.Time // UTC midnight
	ItemName string
	Size     string
	Color    string
	Quantity int
}

// ParsedPayload is everything the parser could pull out of a response.
// Fields the response did not carry stay empty.
type ParsedPayload struct {
	Title         string
	Yesterday     string
	SevenDayTotal *int
	Records       []SaleRecord
}

// KeyTotal is one row of a top-N breakdown.
type KeyTotal struct {
	Key      string
	Quantity int
}

// DayTotal is one point of the daily series.
type DayTotal struct {
	Date     time.Time
	Quantity int
}

// DetailRow is a display-ready SaleRecord.
type DetailRow struct {
	Date     string
	ItemName string
	Size     string
	Color    string
	Quantity int
}

// Result is what a finished capture cycle hands to the renderer.
type Result struct {
	InputText string
	RawText   string
	Payload   ParsedPayload
	TopSizes  []KeyTotal
	TopColors []KeyTotal
	Daily     []DayTotal // nil when there are no records
	Details   []DetailRow
}

// HistoryEntry is a stored query result.
type HistoryEntry struct {
	ID          int64
	InputText   string
	RawText     string
	Title       string
	RecordCount int
	Source      string // window the text was captured from, if known
	CreatedAt   time.Time
}
