package workbook

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/condition-atlas/pkg/adapters"
	"github.com/de-tools/condition-atlas/pkg/models/domain"
	"github.com/de-tools/condition-atlas/pkg/models/store"
)

// DefaultSheet is the raw data sheet of a previously generated report.
const DefaultSheet = "data"

const (
	levelColumn   = 1
	commentColumn = 2
)

// Reader reads the raw data sheet of a prior report: a header row followed by
// date, level, comment rows.
type Reader struct {
	sheet string
}

func NewReader(sheet string) *Reader {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Reader{sheet: sheet}
}

func (r *Reader) Read(ctx context.Context, path string) ([]domain.ConditionRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := r.rows(f)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ConditionRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec, ok := adapters.MapStoreRowToDomainRecord(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("sheet", r.sheet).
		Int("records", len(records)).
		Int("dropped", dropped).
		Msg("workbook read")
	return records, nil
}

func (r *Reader) rows(f *excelize.File) ([]store.ConditionRow, error) {
	if idx, err := f.GetSheetIndex(r.sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("workbook has no %q sheet", r.sheet)
	}

	raw, err := f.GetRows(r.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}

	rows := make([]store.ConditionRow, 0, len(raw))
	for i, cells := range raw {
		// Header row.
		if i == 0 || len(cells) == 0 {
			continue
		}
		line := i + 1
		fields := make([]string, 3)
		for col := 0; col < len(fields) && col < len(cells); col++ {
			v, err := r.typedValue(f, col, line, cells[col])
			if err != nil {
				return nil, err
			}
			fields[col] = v
		}
		rows = append(rows, store.ConditionRow{
			Line:    line,
			Date:    dateText(fields[0]),
			Level:   fields[1],
			Comment: fields[2],
		})
	}
	return rows, nil
}

// dateText converts a date serial number to text; other values are passed through
// for the layout-based parser.
func dateText(v string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

// typedValue blanks cells whose type cannot hold the column's value: booleans and errors
// everywhere, text in the level column and anything but text in the comment column.
func (r *Reader) typedValue(f *excelize.File, col, line int, v string) (string, error) {
	if v == "" {
		return v, nil
	}
	cell, err := excelize.CoordinatesToCellName(col+1, line)
	if err != nil {
		return "", err
	}
	typ, err := f.GetCellType(r.sheet, cell)
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s: %w", cell, err)
	}

	switch typ {
	case excelize.CellTypeBool, excelize.CellTypeError:
		return "", nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		if col == levelColumn {
			return "", nil
		}
		return v, nil
	default:
		if col == commentColumn {
			return "", nil
		}
		return v, nil
	}
}
