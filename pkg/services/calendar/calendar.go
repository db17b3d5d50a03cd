package calendar

import (
	"time"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

// SynthesizeYear expands the records of year onto every date from Jan 1 to Dec 31.
// Dates without a record keep a nil level and comment.
func SynthesizeYear(series domain.RecordSeries, year int) domain.YearCalendar {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	byDate := make(map[time.Time]domain.ConditionRecord)
	for _, r := range series {
		d := domain.Date(r.Date)
		if d.Year() == year {
			byDate[d] = r
		}
	}

	days := make([]domain.CalendarDay, 0, 366)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		wd := domain.ISOWeekday(d)
		day := domain.CalendarDay{
			Date:    d,
			Weekday: wd,
			Holiday: wd.HolidayWeight(),
		}
		if r, ok := byDate[d]; ok {
			day.Level = r.Level
			day.Comment = r.Comment
		}
		days = append(days, day)
	}

	return domain.YearCalendar{Year: year, Days: days}
}

// DaysIn returns the number of days of year.
func DaysIn(year int) int {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(start.AddDate(1, 0, 0).Sub(start).Hours() / 24)
}
