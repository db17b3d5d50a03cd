package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleSeries() domain.RecordSeries {
	return domain.RecordSeries{
		{Date: day(2024, 12, 30), Level: domain.LevelPtr(4), Comment: domain.StringPtr("ok")},
		{Date: day(2024, 12, 31)},
		{Date: day(2025, 1, 26), Level: domain.LevelPtr(2), Comment: domain.StringPtr("c")},
		{Date: day(2025, 2, 3), Level: domain.LevelPtr(3)},
	}
}

func cellAt(t *testing.T, s *domain.Sheet, row, col int) domain.Cell {
	t.Helper()
	c, ok := s.Cell(domain.CellRef{Row: row, Col: col})
	require.True(t, ok, "no cell at %d,%d on %s", row, col, s.Name)
	return c
}

func TestEngine_Layout_Sheets(t *testing.T) {
	doc, err := NewEngine(DefaultSettings()).Layout(context.Background(), sampleSeries())
	require.NoError(t, err)

	names := make([]string, 0, len(doc.Sheets))
	for _, s := range doc.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"data", "comparison", "2024", "2025"}, names)
}

func TestEngine_Layout_RawSheet(t *testing.T) {
	series := sampleSeries()
	doc, err := NewEngine(DefaultSettings()).Layout(context.Background(), series)
	require.NoError(t, err)

	raw := doc.Sheets[0]
	assert.Equal(t, "date", cellAt(t, raw, 0, 0).Text)
	assert.Equal(t, "level", cellAt(t, raw, 0, 1).Text)
	assert.Equal(t, "comment", cellAt(t, raw, 0, 2).Text)

	for i, r := range series {
		c := cellAt(t, raw, i+1, 0)
		assert.Equal(t, domain.CellDate, c.Kind)
		assert.Equal(t, r.Date, c.Date)
	}
	assert.Equal(t, float64(4), cellAt(t, raw, 1, 1).Number)
	assert.Equal(t, "ok", cellAt(t, raw, 1, 2).Text)

	_, ok := raw.Cell(domain.CellRef{Row: 2, Col: 1})
	assert.False(t, ok, "null level must stay empty")
}

func TestEngine_Layout_YearSheet(t *testing.T) {
	doc, err := NewEngine(DefaultSettings()).Layout(context.Background(), sampleSeries())
	require.NoError(t, err)

	idx, ok := doc.SheetIndex("2025")
	require.True(t, ok)
	sheet := doc.Sheets[idx]

	// Calendar: header plus 365 days.
	for col, h := range domain.CalendarHeader {
		assert.Equal(t, h, cellAt(t, sheet, 0, col).Text)
	}
	assert.Equal(t, day(2025, 1, 1), cellAt(t, sheet, 1, domain.CalendarDateColumn).Date)
	assert.Equal(t, day(2025, 12, 31), cellAt(t, sheet, 365, domain.CalendarDateColumn).Date)
	_, ok = sheet.Cell(domain.CellRef{Row: 366, Col: domain.CalendarDateColumn})
	assert.False(t, ok)

	jan26 := 26
	assert.Equal(t, "日", cellAt(t, sheet, jan26, domain.CalendarWeekdayColumn).Text)
	assert.Equal(t, float64(5), cellAt(t, sheet, jan26, domain.CalendarHolidayColumn).Number)
	assert.Equal(t, float64(2), cellAt(t, sheet, jan26, domain.CalendarLevelColumn).Number)
	assert.Equal(t, "c", cellAt(t, sheet, jan26, domain.CalendarCommentColumn).Text)

	// Aggregation at column G.
	assert.Equal(t, "level", cellAt(t, sheet, 0, 6).Text)
	assert.Equal(t, "annual", cellAt(t, sheet, 0, 8).Text)
	assert.Equal(t, "1月", cellAt(t, sheet, 0, 9).Text)
	assert.Equal(t, "12月", cellAt(t, sheet, 0, 20).Text)
	for i, l := range domain.Levels {
		assert.Equal(t, float64(l), cellAt(t, sheet, i+1, 6).Number)
		assert.Equal(t, l.Glyph(), cellAt(t, sheet, i+1, 7).Text)
	}
	// Level 2 is row 4, level 3 is row 3.
	assert.Equal(t, float64(1), cellAt(t, sheet, 4, 8).Number)
	assert.Equal(t, float64(1), cellAt(t, sheet, 4, 9).Number)
	assert.Equal(t, float64(1), cellAt(t, sheet, 3, 10).Number)
	assert.Equal(t, float64(0), cellAt(t, sheet, 1, 20).Number)

	require.Len(t, sheet.DataBars, 2)
	assert.Equal(t, domain.CellRange{Sheet: idx, From: domain.CellRef{Row: 1, Col: 8}, To: domain.CellRef{Row: 6, Col: 8}}, sheet.DataBars[0].Range)
	assert.Equal(t, domain.CellRange{Sheet: idx, From: domain.CellRef{Row: 1, Col: 9}, To: domain.CellRef{Row: 6, Col: 20}}, sheet.DataBars[1].Range)
	assert.NotEqual(t, sheet.DataBars[0].Color, sheet.DataBars[1].Color)
}

func TestEngine_Layout_Charts(t *testing.T) {
	doc, err := NewEngine(DefaultSettings()).Layout(context.Background(), sampleSeries())
	require.NoError(t, err)

	idx, _ := doc.SheetIndex("2024")
	sheet := doc.Sheets[idx]
	require.Len(t, sheet.Charts, 12)

	// 2024 is a leap year: February spans rows 32..60.
	feb := sheet.Charts[1]
	assert.Equal(t, "2月", feb.Title)
	assert.Equal(t, domain.CellRef{Row: 8, Col: 16}, feb.Anchor)
	for _, s := range feb.Series {
		assert.Equal(t, idx, s.Values.Sheet)
		assert.Equal(t, 32, s.Values.From.Row)
		assert.Equal(t, 60, s.Values.To.Row)
	}

	dec := sheet.Charts[11]
	assert.Equal(t, "12月", dec.Title)
	assert.Equal(t, domain.CellRef{Row: 48, Col: 16}, dec.Anchor)
	assert.Equal(t, 366, dec.Series[0].Values.To.Row)
}

func TestEngine_Layout_Comparison(t *testing.T) {
	doc, err := NewEngine(DefaultSettings()).Layout(context.Background(), sampleSeries())
	require.NoError(t, err)

	cmp := doc.Sheets[1]
	assert.Equal(t, "2024", cellAt(t, cmp, 0, 0).Text)
	assert.Equal(t, "level", cellAt(t, cmp, 1, 0).Text)
	assert.Equal(t, "2025", cellAt(t, cmp, 9, 0).Text)
	assert.Equal(t, "level", cellAt(t, cmp, 10, 0).Text)

	// 2024 level 4 (second level row) annual count.
	assert.Equal(t, float64(1), cellAt(t, cmp, 3, 2).Number)

	require.Len(t, cmp.DataBars, 4)
	assert.Equal(t, domain.CellRange{Sheet: 1, From: domain.CellRef{Row: 2, Col: 2}, To: domain.CellRef{Row: 7, Col: 2}}, cmp.DataBars[0].Range)
	assert.Equal(t, domain.CellRange{Sheet: 1, From: domain.CellRef{Row: 11, Col: 3}, To: domain.CellRef{Row: 16, Col: 14}}, cmp.DataBars[3].Range)
	assert.Empty(t, cmp.Charts)
}

func TestEngine_Layout_EmptySeries(t *testing.T) {
	doc, err := NewEngine(DefaultSettings()).Layout(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, doc.Sheets, 2)
}

func TestEngine_Layout_Errors(t *testing.T) {
	t.Run("unsorted series", func(t *testing.T) {
		series := domain.RecordSeries{{Date: day(2025, 1, 2)}, {Date: day(2025, 1, 1)}}
		_, err := NewEngine(DefaultSettings()).Layout(context.Background(), series)
		assert.Error(t, err)
	})

	t.Run("sheet name collides with a year", func(t *testing.T) {
		settings := DefaultSettings()
		settings.ComparisonSheet = "2025"
		_, err := NewEngine(settings).Layout(context.Background(), sampleSeries())
		assert.Error(t, err)
	})
}

func TestSummarize(t *testing.T) {
	aggs := Summarize(sampleSeries())
	require.Len(t, aggs, 2)
	assert.Equal(t, 2024, aggs[0].Year)
	assert.Equal(t, 1, aggs[0].Annual.Total())
	assert.Equal(t, 2025, aggs[1].Year)
	assert.Equal(t, 2, aggs[1].Annual.Total())
}
