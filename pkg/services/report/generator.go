package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
	"github.com/de-tools/condition-atlas/pkg/services/merge"
	"github.com/de-tools/condition-atlas/pkg/services/source"
)

var (
	// ErrInputRead marks a missing, unreadable or schema-incompatible input.
	ErrInputRead = errors.New("input read failure")
	// ErrOutputWrite marks a failure to produce or publish the output document.
	ErrOutputWrite = errors.New("output write failure")
	// ErrInvalidRequest marks a request missing a required field.
	ErrInvalidRequest = errors.New("invalid request")
)

// Request names the files of one report run. ExcelPath may be empty when there is no prior report.
type Request struct {
	CSVPath    string `json:"csv_path"`
	ExcelPath  string `json:"excel_path"`
	OutputPath string `json:"output_path"`
}

// Writer serializes a finished document.
type Writer interface {
	Write(ctx context.Context, doc *domain.ReportDocument, path string) error
}

// Publisher copies a written report somewhere else under the given file name.
type Publisher interface {
	Publish(ctx context.Context, localPath, name string) (string, error)
}

// Generator runs the whole pipeline: read, merge, lay out, write.
type Generator struct {
	sources   source.Registry
	engine    *Engine
	writer    Writer
	publisher Publisher
}

type Option func(*Generator)

func WithPublisher(p Publisher) Option {
	return func(g *Generator) {
		g.publisher = p
	}
}

func NewGenerator(sources source.Registry, engine *Engine, writer Writer, opts ...Option) *Generator {
	g := &Generator{
		sources: sources,
		engine:  engine,
		writer:  writer,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the report described by req and returns a human-readable summary.
// Any error means no report was produced and any file already at req.OutputPath is left as it was.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(req.OutputPath) == "" {
		return "", fmt.Errorf("%w: output path is required", ErrInvalidRequest)
	}

	series, err := g.Series(ctx, req)
	if err != nil {
		return "", err
	}

	doc, err := g.engine.Layout(ctx, series)
	if err != nil {
		return "", fmt.Errorf("%w: failed to lay out report: %w", ErrOutputWrite, err)
	}

	staged, err := g.stage(ctx, doc, req.OutputPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	defer removeStaged(ctx, staged)

	msg := fmt.Sprintf("Saved report to %s: %d records, %d sheets", req.OutputPath, len(series), len(doc.Sheets))
	if g.publisher != nil {
		location, err := g.publisher.Publish(ctx, staged, filepath.Base(req.OutputPath))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
		msg += fmt.Sprintf(", published to %s", location)
	}

	if err := os.Rename(staged, req.OutputPath); err != nil {
		return "", fmt.Errorf("%w: failed to move report into place: %w", ErrOutputWrite, err)
	}

	logger.Info().
		Str("output", req.OutputPath).
		Int("records", len(series)).
		Ints("years", series.Years()).
		Msg("report generated")
	return msg, nil
}

// stage writes doc to a new file next to output and returns its path.
func (g *Generator) stage(ctx context.Context, doc *domain.ReportDocument, output string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(output), ".condition-atlas-*"+filepath.Ext(output))
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}
	staged := tmp.Name()
	if err := tmp.Close(); err != nil {
		removeStaged(ctx, staged)
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	if err := g.writer.Write(ctx, doc, staged); err != nil {
		removeStaged(ctx, staged)
		return "", err
	}
	return staged, nil
}

// Series reads both inputs and merges them, the prior report first so the export wins.
func (g *Generator) Series(ctx context.Context, req Request) (domain.RecordSeries, error) {
	if strings.TrimSpace(req.CSVPath) == "" {
		return nil, fmt.Errorf("%w: csv path is required", ErrInvalidRequest)
	}

	incoming, err := g.read(ctx, req.CSVPath)
	if err != nil {
		return nil, err
	}

	var existing []domain.ConditionRecord
	if strings.TrimSpace(req.ExcelPath) != "" {
		existing, err = g.read(ctx, req.ExcelPath)
		if err != nil {
			return nil, err
		}
	}

	series := merge.Merge(existing, incoming)
	zerolog.Ctx(ctx).Debug().
		Int("existing", len(existing)).
		Int("incoming", len(incoming)).
		Int("merged", len(series)).
		Msg("inputs merged")
	return series, nil
}

func (g *Generator) read(ctx context.Context, path string) ([]domain.ConditionRecord, error) {
	reader, err := g.sources.ReaderFor(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputRead, err)
	}
	records, err := reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrInputRead, path, err)
	}
	return records, nil
}

// removeStaged deletes a staging file; after a successful rename there is nothing left to remove.
func removeStaged(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to remove staging file")
	}
}
