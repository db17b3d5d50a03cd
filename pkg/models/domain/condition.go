package domain

import (
	"fmt"
	"sort"
	"time"
)

// Level is the ordinal wellbeing score recorded for a day: 5 is best, 0 is worst.
type Level int

const (
	LevelWorst Level = 0
	LevelBest  Level = 5

	// LevelCount is the size of the closed level domain.
	LevelCount = int(LevelBest-LevelWorst) + 1
)

// Levels lists the scale in report order, best first.
var Levels = [LevelCount]Level{5, 4, 3, 2, 1, 0}

func (l Level) Valid() bool {
	return l >= LevelWorst && l <= LevelBest
}

// Glyph returns the trend arrow displayed next to the level.
func (l Level) Glyph() string {
	switch l {
	case 5:
		return "↑"
	case 4:
		return "↗"
	case 3:
		return "→"
	case 2:
		return "↘"
	case 1:
		return "↓"
	case 0:
		return "⇓"
	default:
		return ""
	}
}

// ConditionRecord is one day of the health log. A nil Level means no entry was made that day.
type ConditionRecord struct {
	Date    time.Time
	Level   *Level
	Comment *string
}

// RecordSeries is sorted ascending by date with at most one record per date.
type RecordSeries []ConditionRecord

// Validate checks the ordering and uniqueness invariant.
func (s RecordSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i-1].Date.Before(s[i].Date) {
			return fmt.Errorf("series is not strictly ascending at %s", s[i].Date.Format(time.DateOnly))
		}
	}
	return nil
}

// Years returns the distinct years present in the series in ascending order.
func (s RecordSeries) Years() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range s {
		y := r.Date.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Date returns the calendar day of t at midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func LevelPtr(l Level) *Level {
	return &l
}

func StringPtr(s string) *string {
	return &s
}
