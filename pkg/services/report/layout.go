package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
	"github.com/de-tools/condition-atlas/pkg/services/aggregate"
	"github.com/de-tools/condition-atlas/pkg/services/calendar"
	"github.com/de-tools/condition-atlas/pkg/services/chart"
)

const (
	// aggregationColumn is where the aggregation table starts on a year sheet.
	aggregationColumn = 6
	// comparisonBlockRows is the year label, the table and one blank spacer row.
	comparisonBlockRows = 1 + domain.AggregationRowCount + 1
)

// RawHeader is the header row of the raw data sheet.
var RawHeader = [3]string{"date", "level", "comment"}

type Settings struct {
	DataSheet       string
	ComparisonSheet string
	AnnualBarColor  string
	MonthlyBarColor string
}

func DefaultSettings() Settings {
	return Settings{
		DataSheet:       "data",
		ComparisonSheet: "comparison",
		AnnualBarColor:  "#638EC6",
		MonthlyBarColor: "#63BE7B",
	}
}

// Engine lays a merged series out as a multi-sheet report document.
type Engine struct {
	settings Settings
}

func NewEngine(settings Settings) *Engine {
	return &Engine{settings: settings}
}

// yearLayout is everything one year contributes to the document.
type yearLayout struct {
	sheet       *domain.Sheet
	aggregation domain.LevelAggregation
}

// Layout builds the raw data sheet, the comparison sheet and one sheet per year.
func (e *Engine) Layout(ctx context.Context, series domain.RecordSeries) (*domain.ReportDocument, error) {
	logger := zerolog.Ctx(ctx)

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid record series: %w", err)
	}

	doc := domain.NewReportDocument()
	if _, err := doc.Append(e.rawSheet(series)); err != nil {
		return nil, fmt.Errorf("failed to add data sheet: %w", err)
	}

	comparison := domain.NewSheet(e.settings.ComparisonSheet)
	comparisonIdx, err := doc.Append(comparison)
	if err != nil {
		return nil, fmt.Errorf("failed to add comparison sheet: %w", err)
	}

	for i, year := range series.Years() {
		yl := e.yearSheet(series, year, doc.NextIndex())
		if _, err := doc.Append(yl.sheet); err != nil {
			return nil, fmt.Errorf("failed to add sheet for %d: %w", year, err)
		}

		top := i * comparisonBlockRows
		comparison.Set(domain.CellRef{Row: top}, domain.TextCell(strconv.Itoa(year)))
		e.writeAggregation(comparison, comparisonIdx, domain.CellRef{Row: top + 1}, yl.aggregation)

		logger.Debug().
			Int("year", year).
			Int("charts", len(yl.sheet.Charts)).
			Msg("year sheet laid out")
	}

	return doc, nil
}

func (e *Engine) rawSheet(series domain.RecordSeries) *domain.Sheet {
	sheet := domain.NewSheet(e.settings.DataSheet)
	for col, h := range RawHeader {
		sheet.Set(domain.CellRef{Col: col}, domain.TextCell(h))
	}
	for i, r := range series {
		row := i + 1
		sheet.Set(domain.CellRef{Row: row, Col: 0}, domain.DateCell(r.Date))
		if r.Level != nil {
			sheet.Set(domain.CellRef{Row: row, Col: 1}, domain.IntCell(int(*r.Level)))
		}
		if r.Comment != nil {
			sheet.Set(domain.CellRef{Row: row, Col: 2}, domain.TextCell(*r.Comment))
		}
	}
	sheet.ColumnWidths[0] = 12
	sheet.ColumnWidths[2] = 40
	return sheet
}

func (e *Engine) yearSheet(series domain.RecordSeries, year, sheetIdx int) yearLayout {
	sheet := domain.NewSheet(strconv.Itoa(year))

	cal := calendar.SynthesizeYear(series, year)
	writeCalendar(sheet, cal)

	agg := aggregate.Aggregate(cal)
	e.writeAggregation(sheet, sheetIdx, domain.CellRef{Col: aggregationColumn}, agg)

	for i, m := 0, time.January; m <= time.December; m++ {
		days := cal.Month(m)
		if len(days) == 0 {
			continue
		}
		// Calendar rows start below the header row.
		first := cal.MonthIndex(m) + 1
		src := chart.Source{Sheet: sheetIdx, FirstRow: first, LastRow: first + len(days) - 1}
		sheet.Charts = append(sheet.Charts, chart.BuildMonthChart(days, src, i))
		i++
	}

	sheet.ColumnWidths[domain.CalendarDateColumn] = 12
	return yearLayout{sheet: sheet, aggregation: agg}
}

func writeCalendar(sheet *domain.Sheet, cal domain.YearCalendar) {
	for col, h := range domain.CalendarHeader {
		sheet.Set(domain.CellRef{Col: col}, domain.TextCell(h))
	}
	for i, d := range cal.Days {
		row := i + 1
		sheet.Set(domain.CellRef{Row: row, Col: domain.CalendarDateColumn}, domain.DateCell(d.Date))
		sheet.Set(domain.CellRef{Row: row, Col: domain.CalendarWeekdayColumn}, domain.TextCell(d.Weekday.Label()))
		sheet.Set(domain.CellRef{Row: row, Col: domain.CalendarHolidayColumn}, domain.IntCell(d.Holiday))
		if d.Level != nil {
			sheet.Set(domain.CellRef{Row: row, Col: domain.CalendarLevelColumn}, domain.IntCell(int(*d.Level)))
		}
		if d.Comment != nil {
			sheet.Set(domain.CellRef{Row: row, Col: domain.CalendarCommentColumn}, domain.TextCell(*d.Comment))
		}
	}
}

// writeAggregation writes the header and six level rows at origin and adds the two data bars.
func (e *Engine) writeAggregation(sheet *domain.Sheet, sheetIdx int, origin domain.CellRef, agg domain.LevelAggregation) {
	at := func(row, col int) domain.CellRef {
		return domain.CellRef{Row: origin.Row + row, Col: origin.Col + col}
	}

	sheet.Set(at(0, domain.AggregationLevelColumn), domain.TextCell("level"))
	sheet.Set(at(0, domain.AggregationGlyphColumn), domain.TextCell("trend"))
	sheet.Set(at(0, domain.AggregationAnnualColumn), domain.TextCell("annual"))
	for m := time.January; m <= time.December; m++ {
		sheet.Set(at(0, domain.AggregationFirstMonthColumn+int(m)-1), domain.TextCell(domain.MonthLabel(m)))
	}

	for i, row := range agg.Rows() {
		r := i + 1
		sheet.Set(at(r, domain.AggregationLevelColumn), domain.IntCell(int(row.Level)))
		sheet.Set(at(r, domain.AggregationGlyphColumn), domain.TextCell(row.Glyph))
		sheet.Set(at(r, domain.AggregationAnnualColumn), domain.IntCell(row.Annual))
		for m, n := range row.Monthly {
			sheet.Set(at(r, domain.AggregationFirstMonthColumn+m), domain.IntCell(n))
		}
	}

	lastRow := domain.AggregationRowCount - 1
	sheet.DataBars = append(sheet.DataBars,
		domain.DataBar{
			Range: domain.CellRange{
				Sheet: sheetIdx,
				From:  at(1, domain.AggregationAnnualColumn),
				To:    at(lastRow, domain.AggregationAnnualColumn),
			},
			Color: e.settings.AnnualBarColor,
		},
		domain.DataBar{
			Range: domain.CellRange{
				Sheet: sheetIdx,
				From:  at(1, domain.AggregationFirstMonthColumn),
				To:    at(lastRow, domain.AggregationColumnCount-1),
			},
			Color: e.settings.MonthlyBarColor,
		},
	)
}

// Summarize aggregates every year of the series without laying out a document.
func Summarize(series domain.RecordSeries) []domain.LevelAggregation {
	years := series.Years()
	out := make([]domain.LevelAggregation, 0, len(years))
	for _, year := range years {
		out = append(out, aggregate.Aggregate(calendar.SynthesizeYear(series, year)))
	}
	return out
}
