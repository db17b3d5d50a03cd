package domain

// LevelCounts holds one count per level, indexed by the level value.
type LevelCounts [LevelCount]int

func (c LevelCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// LevelAggregation counts the recorded levels of one year, annually and per month.
// Monthly[0] is January.
type LevelAggregation struct {
	Year    int
	Annual  LevelCounts
	Monthly [12]LevelCounts
}

// AggregationRow is one line of the rendered aggregation table.
type AggregationRow struct {
	Level   Level
	Glyph   string
	Annual  int
	Monthly [12]int
}

// Rows returns the table in fixed descending level order, always six rows.
func (a LevelAggregation) Rows() []AggregationRow {
	rows := make([]AggregationRow, 0, LevelCount)
	for _, l := range Levels {
		row := AggregationRow{
			Level:  l,
			Glyph:  l.Glyph(),
			Annual: a.Annual[l],
		}
		for m := range a.Monthly {
			row.Monthly[m] = a.Monthly[m][l]
		}
		rows = append(rows, row)
	}
	return rows
}

// Aggregation table columns relative to the table origin.
const (
	AggregationLevelColumn = iota
	AggregationGlyphColumn
	AggregationAnnualColumn
	AggregationFirstMonthColumn

	AggregationColumnCount = AggregationFirstMonthColumn + 12
	// AggregationRowCount is the header plus one row per level.
	AggregationRowCount = 1 + LevelCount
)
