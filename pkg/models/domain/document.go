package domain

import (
	"fmt"
	"sort"
	"time"
)

type CellKind int

const (
	CellText CellKind = iota
	CellNumber
	CellDate
)

// Cell is a typed sheet value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

func IntCell(n int) Cell {
	return NumberCell(float64(n))
}

func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

// CellRef addresses a cell by 0-indexed row and column.
type CellRef struct {
	Row int
	Col int
}

// CellRange is an inclusive rectangle on the sheet at index Sheet of the owning document.
type CellRange struct {
	Sheet int
	From  CellRef
	To    CellRef
}

// DataBar is a conditional data bar format applied to a range.
type DataBar struct {
	Range CellRange
	Color string
}

type SeriesKind int

const (
	SeriesLine SeriesKind = iota
	SeriesBar
)

type MarkerSymbol string

const (
	MarkerNone   MarkerSymbol = "none"
	MarkerCircle MarkerSymbol = "circle"
)

type ChartSeries struct {
	Name       string
	Kind       SeriesKind
	Categories CellRange
	Values     CellRange
	Marker     MarkerSymbol
	// FillColor is the bar fill; bars are drawn without an outline.
	FillColor string
}

type ChartAxis struct {
	Date           bool
	NumFmt         string
	MajorUnit      float64
	Min            *float64
	Max            *float64
	MajorGridlines bool
	GridlineColor  string
}

// PlotArea is the inner plot rectangle as fractions of the chart size.
type PlotArea struct {
	X float64
	Y float64
	W float64
	H float64
}

// Chart is an embedded combination chart anchored at a cell.
type Chart struct {
	Title    string
	Width    int
	Height   int
	Legend   bool
	Anchor   CellRef
	Series   []ChartSeries
	XAxis    ChartAxis
	YAxis    ChartAxis
	PlotArea PlotArea
}

// Sheet holds the contents of one worksheet.
type Sheet struct {
	Name         string
	cells        map[CellRef]Cell
	DataBars     []DataBar
	Charts       []Chart
	ColumnWidths map[int]float64
}

func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:         name,
		cells:        make(map[CellRef]Cell),
		ColumnWidths: make(map[int]float64),
	}
}

func (s *Sheet) Set(ref CellRef, c Cell) {
	s.cells[ref] = c
}

func (s *Sheet) Cell(ref CellRef) (Cell, bool) {
	c, ok := s.cells[ref]
	return c, ok
}

// Refs returns every populated cell in row-major order.
func (s *Sheet) Refs() []CellRef {
	refs := make([]CellRef, 0, len(s.cells))
	for ref := range s.cells {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Row != refs[j].Row {
			return refs[i].Row < refs[j].Row
		}
		return refs[i].Col < refs[j].Col
	})
	return refs
}

// ReportDocument is an ordered arena of sheets. Ranges and charts refer to sheets by index.
type ReportDocument struct {
	Sheets []*Sheet
}

func NewReportDocument() *ReportDocument {
	return &ReportDocument{}
}

// Append adds a sheet and returns its index. Sheet names are unique.
func (d *ReportDocument) Append(sheet *Sheet) (int, error) {
	if sheet.Name == "" {
		return -1, fmt.Errorf("sheet name cannot be empty")
	}
	if _, exists := d.SheetIndex(sheet.Name); exists {
		return -1, fmt.Errorf("sheet %q already exists", sheet.Name)
	}
	d.Sheets = append(d.Sheets, sheet)
	return len(d.Sheets) - 1, nil
}

func (d *ReportDocument) SheetIndex(name string) (int, bool) {
	for i, s := range d.Sheets {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}

// NextIndex is the index the next appended sheet will receive.
func (d *ReportDocument) NextIndex() int {
	return len(d.Sheets)
}
