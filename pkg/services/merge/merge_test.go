package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, level *domain.Level, comment *string) domain.ConditionRecord {
	return domain.ConditionRecord{Date: date, Level: level, Comment: comment}
}

func TestMerge_DisjointInputs(t *testing.T) {
	existing := domain.RecordSeries{
		rec(day(2025, 1, 25), nil, nil),
		rec(day(2025, 1, 26), domain.LevelPtr(2), domain.StringPtr("c")),
	}
	incoming := domain.RecordSeries{
		rec(day(2025, 1, 27), nil, nil),
		rec(day(2025, 1, 28), domain.LevelPtr(4), domain.StringPtr("x")),
	}

	merged := Merge(existing, incoming)

	expected := domain.RecordSeries{
		rec(day(2025, 1, 25), nil, nil),
		rec(day(2025, 1, 26), domain.LevelPtr(2), domain.StringPtr("c")),
		rec(day(2025, 1, 27), nil, nil),
		rec(day(2025, 1, 28), domain.LevelPtr(4), domain.StringPtr("x")),
	}
	assert.Equal(t, expected, merged)
	assert.NoError(t, merged.Validate())
}

func TestMerge_IncomingWins(t *testing.T) {
	existing := domain.RecordSeries{rec(day(2025, 1, 26), domain.LevelPtr(2), domain.StringPtr("old"))}
	incoming := domain.RecordSeries{rec(day(2025, 1, 26), domain.LevelPtr(5), nil)}

	merged := Merge(existing, incoming)

	require.Len(t, merged, 1)
	require.NotNil(t, merged[0].Level)
	assert.Equal(t, domain.Level(5), *merged[0].Level)
	assert.Nil(t, merged[0].Comment)
}

func TestMerge_IncomingNullStillWins(t *testing.T) {
	existing := domain.RecordSeries{rec(day(2025, 1, 26), domain.LevelPtr(2), nil)}
	incoming := domain.RecordSeries{rec(day(2025, 1, 26), nil, nil)}

	merged := Merge(existing, incoming)

	require.Len(t, merged, 1)
	assert.Nil(t, merged[0].Level)
}

func TestMerge_UnionSortedAndUnique(t *testing.T) {
	existing := domain.RecordSeries{
		rec(day(2024, 12, 31), domain.LevelPtr(1), nil),
		rec(day(2025, 1, 3), domain.LevelPtr(1), nil),
		rec(day(2025, 1, 1), domain.LevelPtr(1), nil),
	}
	incoming := domain.RecordSeries{
		rec(day(2025, 1, 2), domain.LevelPtr(3), nil),
		rec(day(2025, 1, 1), domain.LevelPtr(3), nil),
	}

	merged := Merge(existing, incoming)

	dates := make([]time.Time, 0, len(merged))
	for _, r := range merged {
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []time.Time{day(2024, 12, 31), day(2025, 1, 1), day(2025, 1, 2), day(2025, 1, 3)}, dates)
	assert.Equal(t, domain.Level(3), *merged[1].Level)
	assert.Len(t, existing, 3, "inputs must not be modified")
	assert.Equal(t, day(2025, 1, 3), existing[1].Date)
}

func TestMerge_TimeOfDayIsIgnored(t *testing.T) {
	existing := domain.RecordSeries{rec(day(2025, 1, 26), domain.LevelPtr(2), nil)}
	incoming := domain.RecordSeries{rec(day(2025, 1, 26).Add(9*time.Hour), domain.LevelPtr(4), nil)}

	merged := Merge(existing, incoming)

	require.Len(t, merged, 1)
	assert.Equal(t, day(2025, 1, 26), merged[0].Date)
	assert.Equal(t, domain.Level(4), *merged[0].Level)
}

func TestMerge_Empty(t *testing.T) {
	merged := Merge(nil, domain.RecordSeries{})
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}
