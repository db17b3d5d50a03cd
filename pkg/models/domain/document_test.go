package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportDocument_Append(t *testing.T) {
	doc := NewReportDocument()

	idx, err := doc.Append(NewSheet("data"))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, doc.NextIndex())

	_, err = doc.Append(NewSheet("data"))
	assert.Error(t, err)

	_, err = doc.Append(NewSheet(""))
	assert.Error(t, err)

	i, ok := doc.SheetIndex("data")
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	_, ok = doc.SheetIndex("missing")
	assert.False(t, ok)
}

func TestSheet_RefsRowMajor(t *testing.T) {
	s := NewSheet("s")
	s.Set(CellRef{Row: 1, Col: 0}, IntCell(3))
	s.Set(CellRef{Row: 0, Col: 2}, TextCell("c"))
	s.Set(CellRef{Row: 0, Col: 0}, TextCell("a"))

	assert.Equal(t, []CellRef{{0, 0}, {0, 2}, {1, 0}}, s.Refs())

	c, ok := s.Cell(CellRef{Row: 1, Col: 0})
	require.True(t, ok)
	assert.Equal(t, CellNumber, c.Kind)
	assert.Equal(t, float64(3), c.Number)
}

func TestLevelAggregation_Rows(t *testing.T) {
	var agg LevelAggregation
	agg.Annual[3] = 2
	agg.Monthly[0][3] = 1
	agg.Monthly[11][3] = 1

	rows := agg.Rows()
	require.Len(t, rows, 6)
	for i, l := range Levels {
		assert.Equal(t, l, rows[i].Level)
		assert.Equal(t, l.Glyph(), rows[i].Glyph)
	}
	assert.Equal(t, 2, rows[2].Annual)
	assert.Equal(t, 1, rows[2].Monthly[0])
	assert.Equal(t, 1, rows[2].Monthly[11])
	assert.Equal(t, 0, rows[0].Annual)
	assert.Equal(t, 2, agg.Annual.Total())
}
