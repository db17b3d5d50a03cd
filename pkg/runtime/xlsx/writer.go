package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

const (
	defaultSheet = "Sheet1"
	dateFormat   = "yyyy/m/d"
)

// Writer serializes a report document to an .xlsx file.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(ctx context.Context, doc *domain.ReportDocument, path string) error {
	if len(doc.Sheets) == 0 {
		return fmt.Errorf("report document has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := createSheets(f, doc); err != nil {
		return err
	}

	numFmt := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	for _, sheet := range doc.Sheets {
		if err := writeCells(f, sheet, dateStyle); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet.Name, err)
		}
		if err := writeDataBars(f, doc, sheet); err != nil {
			return fmt.Errorf("failed to format sheet %q: %w", sheet.Name, err)
		}
		if err := writeCharts(f, doc, sheet); err != nil {
			return fmt.Errorf("failed to add charts to sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("sheets", len(doc.Sheets)).Msg("workbook saved")
	return nil
}

func createSheets(f *excelize.File, doc *domain.ReportDocument) error {
	for i, sheet := range doc.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("failed to rename sheet to %q: %w", sheet.Name, err)
			}
			continue
		}
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}
	}
	return nil
}

func writeCells(f *excelize.File, sheet *domain.Sheet, dateStyle int) error {
	for _, ref := range sheet.Refs() {
		c, _ := sheet.Cell(ref)
		name, err := cellName(ref, false)
		if err != nil {
			return err
		}
		switch c.Kind {
		case domain.CellText:
			err = f.SetCellStr(sheet.Name, name, c.Text)
		case domain.CellNumber:
			err = f.SetCellValue(sheet.Name, name, c.Number)
		case domain.CellDate:
			if err = f.SetCellValue(sheet.Name, name, c.Date); err == nil {
				err = f.SetCellStyle(sheet.Name, name, name, dateStyle)
			}
		}
		if err != nil {
			return fmt.Errorf("cell %s: %w", name, err)
		}
	}

	for col, width := range sheet.ColumnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, name, name, width); err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
	}
	return nil
}

func writeDataBars(f *excelize.File, doc *domain.ReportDocument, sheet *domain.Sheet) error {
	for _, bar := range sheet.DataBars {
		if owner := doc.Sheets[bar.Range.Sheet]; owner != sheet {
			return fmt.Errorf("data bar range belongs to sheet %q", owner.Name)
		}
		ref, err := areaRef(bar.Range, false)
		if err != nil {
			return err
		}
		err = f.SetConditionalFormat(sheet.Name, ref, []excelize.ConditionalFormatOptions{{
			Type:     "data_bar",
			Criteria: "=",
			MinType:  "min",
			MaxType:  "max",
			BarColor: bar.Color,
		}})
		if err != nil {
			return fmt.Errorf("data bar %s: %w", ref, err)
		}
	}
	return nil
}

func writeCharts(f *excelize.File, doc *domain.ReportDocument, sheet *domain.Sheet) error {
	for _, c := range sheet.Charts {
		anchor, err := cellName(c.Anchor, false)
		if err != nil {
			return err
		}

		var charts []*excelize.Chart
		for _, s := range c.Series {
			ec, err := seriesChart(doc, c, s)
			if err != nil {
				return err
			}
			charts = append(charts, ec)
		}
		if len(charts) == 0 {
			continue
		}

		// Chart-level options are read from the first chart of a combination.
		primary := charts[0]
		primary.Dimension = excelize.ChartDimension{Width: uint(c.Width), Height: uint(c.Height)}
		primary.Title = []excelize.RichTextRun{{Text: c.Title}}
		if !c.Legend {
			primary.Legend = excelize.ChartLegend{Position: "none"}
		}
		// Each chart of a combination redraws the shared axes, so all of them carry the settings.
		xAxis, yAxis := categoryAxis(c.XAxis), axis(c.YAxis)
		for _, ec := range charts {
			ec.XAxis = xAxis
			ec.YAxis = yAxis
		}

		if err := f.AddChart(sheet.Name, anchor, primary, charts[1:]...); err != nil {
			return fmt.Errorf("chart %q at %s: %w", c.Title, anchor, err)
		}
	}
	return nil
}

func seriesChart(doc *domain.ReportDocument, c domain.Chart, s domain.ChartSeries) (*excelize.Chart, error) {
	categories, err := sheetRef(doc, s.Categories)
	if err != nil {
		return nil, err
	}
	values, err := sheetRef(doc, s.Values)
	if err != nil {
		return nil, err
	}

	es := excelize.ChartSeries{
		Name:       s.Name,
		Categories: categories,
		Values:     values,
		Marker:     excelize.ChartMarker{Symbol: string(s.Marker)},
	}

	ec := &excelize.Chart{}
	switch s.Kind {
	case domain.SeriesBar:
		ec.Type = excelize.Col
		es.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.FillColor}}
		es.Line = excelize.ChartLine{Type: excelize.ChartLineNone}
	case domain.SeriesLine:
		ec.Type = excelize.Line
		es.Marker.Size = 5
	default:
		return nil, fmt.Errorf("unsupported series kind %d in chart %q", s.Kind, c.Title)
	}
	ec.Series = []excelize.ChartSeries{es}
	return ec, nil
}

// categoryAxis renders the category axis. Major units only apply to value axes; a date
// axis with daily ticks is drawn by labelling every category instead.
func categoryAxis(a domain.ChartAxis) excelize.ChartAxis {
	ax := axis(a)
	if a.Date && a.MajorUnit == 1 {
		ax.TickLabelSkip = 1
	}
	return ax
}

func axis(a domain.ChartAxis) excelize.ChartAxis {
	ax := excelize.ChartAxis{
		MajorGridLines: a.MajorGridlines,
		MajorUnit:      a.MajorUnit,
		Minimum:        a.Min,
		Maximum:        a.Max,
	}
	if a.NumFmt != "" {
		ax.NumFmt = excelize.ChartNumFmt{CustomNumFmt: a.NumFmt}
	}
	return ax
}

// sheetRef renders an absolute reference such as '2024'!$A$2:$A$32.
func sheetRef(doc *domain.ReportDocument, r domain.CellRange) (string, error) {
	if r.Sheet < 0 || r.Sheet >= len(doc.Sheets) {
		return "", fmt.Errorf("range refers to unknown sheet %d", r.Sheet)
	}
	area, err := areaRef(r, true)
	if err != nil {
		return "", err
	}
	name := strings.ReplaceAll(doc.Sheets[r.Sheet].Name, "'", "''")
	return fmt.Sprintf("'%s'!%s", name, area), nil
}

func areaRef(r domain.CellRange, abs bool) (string, error) {
	from, err := cellName(r.From, abs)
	if err != nil {
		return "", err
	}
	to, err := cellName(r.To, abs)
	if err != nil {
		return "", err
	}
	return from + ":" + to, nil
}

func cellName(ref domain.CellRef, abs bool) (string, error) {
	return excelize.CoordinatesToCellName(ref.Col+1, ref.Row+1, abs)
}
