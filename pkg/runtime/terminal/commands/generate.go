package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
	"github.com/de-tools/condition-atlas/pkg/services/report"
)

// Generator is the report pipeline as seen by the commands.
type Generator interface {
	Generate(ctx context.Context, req report.Request) (string, error)
	Series(ctx context.Context, req report.Request) (domain.RecordSeries, error)
}

type Dependencies struct {
	Generator Generator
}

// Loader builds the dependencies once flags are parsed.
type Loader func(cmd *cobra.Command) (*Dependencies, error)

type GenerateCmd struct {
	req  report.Request
	load Loader
}

func NewGenerateCmd(load Loader) *cobra.Command {
	gc := &GenerateCmd{load: load}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Merge the exported log with the previous report and write a new workbook",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.req.CSVPath, "csv", "", "Path to the exported condition log (csv)")
	cmd.Flags().StringVar(&gc.req.ExcelPath, "excel", "", "Path to the previous report workbook, if any")
	cmd.Flags().StringVarP(&gc.req.OutputPath, "out", "o", "", "Path of the workbook to write")

	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	deps, err := gc.load(cmd)
	if err != nil {
		return err
	}

	msg, err := deps.Generator.Generate(cmd.Context(), gc.req)
	if err != nil {
		return fmt.Errorf("report not produced: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
