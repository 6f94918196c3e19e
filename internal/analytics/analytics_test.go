package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-watcher/internal/models"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTopBySize(t *testing.T) {
	records := []models.SaleRecord{
		{Date: date("2025-10-20"), Size: "M", Quantity: 3},
		{Date: date("2025-10-21"), Size: "L", Quantity: 7},
	}

	assert.Equal(t, []models.KeyTotal{{Key: "L", Quantity: 7}, {Key: "M", Quantity: 3}}, TopBySize(records, 10))
}

func TestTopByEmpty(t *testing.T) {
	got := TopBy(nil, BySize, 10)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTopBy(t *testing.T) {
	records := []models.SaleRecord{
		{Color: "红", Quantity: 2},
		{Color: "", Quantity: 5},
		{Color: "蓝", Quantity: 5},
		{Color: "红", Quantity: 3},
		{Color: "绿", Quantity: 1},
	}

	tests := []struct {
		name string
		n    int
		want []models.KeyTotal
	}{
		{
			name: "ties keep first-seen order",
			n:    10,
			want: []models.KeyTotal{
				{Key: "红", Quantity: 5},
				{Key: models.UnknownKey, Quantity: 5},
				{Key: "蓝", Quantity: 5},
				{Key: "绿", Quantity: 1},
			},
		},
		{
			name: "truncated to n",
			n:    2,
			want: []models.KeyTotal{
				{Key: "红", Quantity: 5},
				{Key: models.UnknownKey, Quantity: 5},
			},
		},
		{
			name: "non-positive n uses default",
			n:    0,
			want: []models.KeyTotal{
				{Key: "红", Quantity: 5},
				{Key: models.UnknownKey, Quantity: 5},
				{Key: "蓝", Quantity: 5},
				{Key: "绿", Quantity: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopByColor(records, tt.n))
		})
	}
}

func TestTopByDefaultCap(t *testing.T) {
	var records []models.SaleRecord
	for i := 0; i < 15; i++ {
		records = append(records, models.SaleRecord{ItemName: string(rune('a' + i)), Quantity: i})
	}

	got := TopBy(records, func(r models.SaleRecord) string { return r.ItemName }, -1)

	require.Len(t, got, DefaultTopN)
	assert.Equal(t, "o", got[0].Key)
	assert.Equal(t, 14, got[0].Quantity)
}

func TestDailySeriesZeroFills(t *testing.T) {
	series, ok := DailySeries([]models.SaleRecord{{Date: date("2025-10-21"), Quantity: 7}})
	require.True(t, ok)
	require.Len(t, series, 7)

	for i, d := range series {
		assert.Equal(t, date("2025-10-15").AddDate(0, 0, i), d.Date)
		if i == 6 {
			assert.Equal(t, 7, d.Quantity)
		} else {
			assert.Zero(t, d.Quantity)
		}
	}
}

func TestDailySeriesSumsAndIgnoresOlderDays(t *testing.T) {
	records := []models.SaleRecord{
		{Date: date("2025-10-21"), Quantity: 2},
		{Date: date("2025-10-01"), Quantity: 100},
		{Date: date("2025-10-19"), Quantity: 4},
		{Date: date("2025-10-21").Add(15 * time.Hour), Quantity: 1},
	}

	series, ok := DailySeries(records)
	require.True(t, ok)

	assert.Equal(t, date("2025-10-21"), series[6].Date)
	assert.Equal(t, 3, series[6].Quantity)
	assert.Equal(t, 4, series[4].Quantity)

	total := 0
	for _, d := range series {
		total += d.Quantity
	}
	assert.Equal(t, 7, total)
}

func TestDailySeriesNoData(t *testing.T) {
	series, ok := DailySeries(nil)
	assert.False(t, ok)
	assert.Nil(t, series)
}

func TestDetailRows(t *testing.T) {
	records := []models.SaleRecord{
		{Date: date("2025-10-20"), ItemName: "A", Size: "M", Color: "红", Quantity: 3},
		{Date: date("2025-10-21"), ItemName: "B", Quantity: 1},
		{Date: date("2025-10-21"), ItemName: "C", Size: "L", Color: "蓝", Quantity: 7},
	}

	assert.Equal(t, []models.DetailRow{
		{Date: "2025-10-21", ItemName: "C", Size: "L", Color: "蓝", Quantity: 7},
		{Date: "2025-10-21", ItemName: "B", Size: models.UnknownKey, Color: models.UnknownKey, Quantity: 1},
		{Date: "2025-10-20", ItemName: "A", Size: "M", Color: "红", Quantity: 3},
	}, DetailRows(records))

	assert.Equal(t, "A", records[0].ItemName, "input order untouched")
}

func TestBuild(t *testing.T) {
	payload := models.ParsedPayload{
		Title:   "商品A",
		Records: []models.SaleRecord{{Date: date("2025-10-21"), Size: "L", Color: "蓝", Quantity: 7}},
	}

	res := Build("K-1", "raw", payload, 5)

	assert.Equal(t, "K-1", res.InputText)
	assert.Equal(t, "raw", res.RawText)
	assert.Equal(t, []models.KeyTotal{{Key: "L", Quantity: 7}}, res.TopSizes)
	assert.Equal(t, []models.KeyTotal{{Key: "蓝", Quantity: 7}}, res.TopColors)
	assert.Len(t, res.Daily, 7)
	assert.Len(t, res.Details, 1)

	empty := Build("K-1", "nothing", models.ParsedPayload{}, 5)
	assert.Nil(t, empty.Daily)
	assert.Empty(t, empty.TopSizes)
	assert.Empty(t, empty.Details)
}
