package workbook

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "prior.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReader_Read(t *testing.T) {
	path := writeWorkbook(t, "data", [][]any{
		{"date", "level", "comment"},
		{day(25), nil, nil},
		{day(26), 2, "c"},
		{"2025/01/27", 9, 12345},
		{"not a date", 3, "dropped"},
		{nil, 4, "no date"},
		{day(28), "four", "x"},
		{day(29), true, "bool level"},
		{day(30), "3", "text level"},
	})

	records, err := NewReader("").Read(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, records, 6)
	assert.Equal(t, domain.ConditionRecord{Date: day(25)}, records[0])
	assert.Equal(t, domain.ConditionRecord{Date: day(26), Level: domain.LevelPtr(2), Comment: domain.StringPtr("c")}, records[1])

	assert.Equal(t, day(27), records[2].Date)
	assert.Nil(t, records[2].Level, "out of range level")
	assert.Nil(t, records[2].Comment, "numeric comment")

	assert.Equal(t, day(28), records[3].Date)
	assert.Nil(t, records[3].Level)
	assert.Equal(t, "x", *records[3].Comment)

	assert.Equal(t, day(29), records[4].Date)
	assert.Nil(t, records[4].Level)

	assert.Equal(t, day(30), records[5].Date)
	assert.Nil(t, records[5].Level, "numeric text is not a level")
	assert.Equal(t, "text level", *records[5].Comment)
}

func TestReader_Read_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{{"date", "level", "comment"}})

	_, err := NewReader("data").Read(context.Background(), path)
	assert.ErrorContains(t, err, `no "data" sheet`)
}

func TestReader_Read_MissingFile(t *testing.T) {
	_, err := NewReader("data").Read(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestDateText(t *testing.T) {
	assert.Equal(t, "2025-01-26", dateText("45683"))
	assert.Equal(t, "2025/01/26", dateText("2025/01/26"))
	assert.Equal(t, "", dateText("-1"))
}
