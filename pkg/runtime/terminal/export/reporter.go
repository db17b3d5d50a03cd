package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

type TableConfig struct {
	LabelWidth int
	CountWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 6,
		CountWidth: 4,
	}
}

// Reporter prints per-year level aggregations as console tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(aggregations []domain.LevelAggregation) error {
	funcMap := template.FuncMap{
		"header": func() string {
			cells := []string{c.pad("level"), c.count("year")}
			for m := time.January; m <= time.December; m++ {
				cells = append(cells, c.count(domain.MonthLabel(m)))
			}
			return "| " + strings.Join(cells, " | ") + " |"
		},
		"formatRow": func(row domain.AggregationRow) string {
			cells := []string{
				c.pad(fmt.Sprintf("%d %s", row.Level, row.Glyph)),
				c.count(row.Annual),
			}
			for _, n := range row.Monthly {
				cells = append(cells, c.count(n))
			}
			return "| " + strings.Join(cells, " | ") + " |"
		},
		"separator": func() string {
			parts := []string{strings.Repeat("-", c.config.LabelWidth+2)}
			for i := 0; i < 13; i++ {
				parts = append(parts, strings.Repeat("-", c.config.CountWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"total": func(a domain.LevelAggregation) int {
			return a.Annual.Total()
		},
	}

	tmpl := `{{if not .}}No records found.
{{end}}{{range .}}
=== {{.Year}} ({{total .}} recorded days) ===
{{separator}}
{{header}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, aggregations)
}

func (c *Reporter) pad(s string) string {
	return fmt.Sprintf("%-*s", c.config.LabelWidth, s)
}

func (c *Reporter) count(v any) string {
	return fmt.Sprintf("%*v", c.config.CountWidth, v)
}
