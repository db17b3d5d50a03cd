package csvlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/de-tools/condition-atlas/pkg/adapters"
	"github.com/de-tools/condition-atlas/pkg/models/domain"
	"github.com/de-tools/condition-atlas/pkg/models/store"
)

const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

type Settings struct {
	// Encoding of the export file, utf-8 or shift_jis.
	Encoding string
	// PreambleRows is the number of leading rows that precede the data.
	PreambleRows int
}

func DefaultSettings() Settings {
	return Settings{Encoding: EncodingUTF8, PreambleRows: 2}
}

// Reader reads the headerless delta export: date, level, comment per row.
type Reader struct {
	settings Settings
}

func NewReader(settings Settings) (*Reader, error) {
	switch strings.ToLower(settings.Encoding) {
	case "", EncodingUTF8, "utf8":
	case EncodingShiftJIS, "sjis", "shift-jis":
	default:
		return nil, fmt.Errorf("unsupported csv encoding %q", settings.Encoding)
	}
	if settings.PreambleRows < 0 {
		return nil, fmt.Errorf("preamble rows cannot be negative")
	}
	return &Reader{settings: settings}, nil
}

func (r *Reader) Read(ctx context.Context, path string) ([]domain.ConditionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv log: %w", err)
	}
	defer f.Close()

	rows, err := r.parse(path, f)
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
		Int("records", len(records)).
		Int("dropped", dropped).
		Msg("csv log read")
	return records, nil
}

func (r *Reader) parse(path string, src io.Reader) ([]store.ConditionRow, error) {
	switch strings.ToLower(r.settings.Encoding) {
	case EncodingShiftJIS, "sjis", "shift-jis":
		src = transform.NewReader(src, japanese.ShiftJIS.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows []store.ConditionRow
	line := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv log: %w", err)
		}
		line++
		if line <= r.settings.PreambleRows || len(fields) == 0 {
			continue
		}

		row := store.ConditionRow{Source: path, Line: line, Date: fields[0]}
		if len(fields) > 1 {
			row.Level = fields[1]
		}
		if len(fields) > 2 {
			row.Comment = fields[2]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
