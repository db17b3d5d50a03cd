package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/condition-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/condition-atlas/pkg/services/report"
)

type SummaryCmd struct {
	req      report.Request
	load     Loader
	reporter *export.Reporter
}

func NewSummaryCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the per-year level counts without writing a workbook",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.req.CSVPath, "csv", "", "Path to the exported condition log (csv)")
	cmd.Flags().StringVar(&sc.req.ExcelPath, "excel", "", "Path to the previous report workbook, if any")

	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	deps, err := sc.load(cmd)
	if err != nil {
		return err
	}

	series, err := deps.Generator.Series(cmd.Context(), sc.req)
	if err != nil {
		return fmt.Errorf("failed to read condition log: %w", err)
	}

	return sc.reporter.Handle(report.Summarize(series))
}
