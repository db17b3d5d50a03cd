package chart

import (
	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

const (
	Width  = 620
	Height = 155

	// GridRows and GridColumns bound the month chart grid on a year sheet.
	GridRows    = 6
	GridColumns = 2

	originRow = 8
	originCol = 5
	rowStep   = 8
	colStep   = 11

	maxMonthDays = 31

	plotInsetX  = 0.05
	plotInsetY  = 0.2
	plotWidth   = 0.9
	plotHeight  = 0.6
	barColor    = "#DDEBF7"
	gridColor   = "#D9D9D9"
	TrendName   = "trend"
	WeekendName = "distribution"
)

// Source locates the calendar rows of one month on a year sheet.
type Source struct {
	Sheet    int
	FirstRow int
	LastRow  int
}

func (s Source) column(col int) domain.CellRange {
	return domain.CellRange{
		Sheet: s.Sheet,
		From:  domain.CellRef{Row: s.FirstRow, Col: col},
		To:    domain.CellRef{Row: s.LastRow, Col: col},
	}
}

// BuildMonthChart builds the trend chart of one month. The line series plots the wellbeing
// level and the bar series plots the weekend weight, both read back from the calendar table
// referenced by src.
func BuildMonthChart(days []domain.CalendarDay, src Source, index int) domain.Chart {
	title := ""
	if len(days) > 0 {
		title = domain.MonthLabel(days[0].Date.Month())
	}
	categories := src.column(domain.CalendarDateColumn)
	yMin, yMax := float64(1), float64(domain.LevelBest)

	return domain.Chart{
		Title:  title,
		Width:  Width,
		Height: Height,
		Legend: false,
		Anchor: Position(index),
		Series: []domain.ChartSeries{
			{
				Name:       WeekendName,
				Kind:       domain.SeriesBar,
				Categories: categories,
				Values:     src.column(domain.CalendarHolidayColumn),
				Marker:     domain.MarkerNone,
				FillColor:  barColor,
			},
			{
				Name:       TrendName,
				Kind:       domain.SeriesLine,
				Categories: categories,
				Values:     src.column(domain.CalendarLevelColumn),
				Marker:     domain.MarkerCircle,
			},
		},
		XAxis: domain.ChartAxis{
			Date:           true,
			NumFmt:         "m/d",
			MajorUnit:      1,
			MajorGridlines: true,
			GridlineColor:  gridColor,
		},
		YAxis: domain.ChartAxis{
			MajorUnit:      1,
			Min:            &yMin,
			Max:            &yMax,
			MajorGridlines: true,
			GridlineColor:  gridColor,
		},
		PlotArea: domain.PlotArea{
			X: plotInsetX,
			Y: plotInsetY,
			W: plotWidth * float64(len(days)) / maxMonthDays,
			H: plotHeight,
		},
	}
}

// Position returns the top-left cell of chart i on the 6x2 grid, filled left to right
// then top to bottom.
func Position(i int) domain.CellRef {
	return domain.CellRef{
		Row: originRow + (i/GridColumns)*rowStep,
		Col: originCol + (i%GridColumns)*colStep,
	}
}
