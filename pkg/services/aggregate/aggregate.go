package aggregate

import (
	"time"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

// Aggregate counts the recorded levels of a calendar for the whole year and per month.
// Every level and month combination is present; days without a level are not counted.
func Aggregate(cal domain.YearCalendar) domain.LevelAggregation {
	agg := domain.LevelAggregation{
		Year:   cal.Year,
		Annual: AggregateMonth(cal.Days),
	}
	for m := time.January; m <= time.December; m++ {
		agg.Monthly[m-1] = AggregateMonth(cal.Month(m))
	}
	return agg
}

// AggregateMonth counts the recorded levels of a slice of days.
func AggregateMonth(days []domain.CalendarDay) domain.LevelCounts {
	var counts domain.LevelCounts
	for _, d := range days {
		if d.Level == nil || !d.Level.Valid() {
			continue
		}
		counts[*d.Level]++
	}
	return counts
}
