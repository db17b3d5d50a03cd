package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/condition-atlas/pkg/runtime/xlsx"
	"github.com/de-tools/condition-atlas/pkg/services/config"
	"github.com/de-tools/condition-atlas/pkg/services/report"
	"github.com/de-tools/condition-atlas/pkg/services/source"
	"github.com/de-tools/condition-atlas/pkg/store/csvlog"
	"github.com/de-tools/condition-atlas/pkg/store/s3"
	"github.com/de-tools/condition-atlas/pkg/store/workbook"
)

// NewLogger builds the process logger at the configured level.
func NewLogger(cfg *config.Config, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// NewSources registers the csv export reader and the prior report reader.
func NewSources(cfg *config.Config) (source.Registry, error) {
	csvReader, err := csvlog.NewReader(csvlog.Settings{
		Encoding:     cfg.Input.CSVEncoding,
		PreambleRows: cfg.Input.CSVPreambleRows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create csv reader: %w", err)
	}
	return source.NewRegistry(map[string]source.Reader{
		"csv":  csvReader,
		"xlsx": workbook.NewReader(cfg.Report.DataSheet),
	})
}

// NewGenerator wires the report pipeline. Publishing is enabled when a bucket is configured.
func NewGenerator(ctx context.Context, cfg *config.Config) (*report.Generator, error) {
	sources, err := NewSources(cfg)
	if err != nil {
		return nil, err
	}

	engine := report.NewEngine(report.Settings{
		DataSheet:       cfg.Report.DataSheet,
		ComparisonSheet: cfg.Report.ComparisonSheet,
		AnnualBarColor:  cfg.Report.AnnualBarColor,
		MonthlyBarColor: cfg.Report.MonthlyBarColor,
	})

	var opts []report.Option
	if cfg.Publish.Bucket != "" {
		publisher, err := s3.NewPublisher(ctx, s3.Settings{
			Bucket: cfg.Publish.Bucket,
			Prefix: cfg.Publish.Prefix,
			Region: cfg.Publish.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create publisher: %w", err)
		}
		opts = append(opts, report.WithPublisher(publisher))
	}

	return report.NewGenerator(sources, engine, xlsx.NewWriter(), opts...), nil
}
