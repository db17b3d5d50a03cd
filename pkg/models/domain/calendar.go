package domain

import (
	"fmt"
	"time"
)

// Weekday is the ISO weekday number, 1 = Monday through 7 = Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// HolidayWeight is the weekend marker value, equal to the top of the wellbeing scale
// so weekend bars span the whole chart height.
const HolidayWeight = int(LevelBest)

func ISOWeekday(t time.Time) Weekday {
	if wd := t.Weekday(); wd != time.Sunday {
		return Weekday(wd)
	}
	return Sunday
}

func (w Weekday) Label() string {
	switch w {
	case Monday:
		return "月"
	case Tuesday:
		return "火"
	case Wednesday:
		return "水"
	case Thursday:
		return "木"
	case Friday:
		return "金"
	case Saturday:
		return "土"
	case Sunday:
		return "日"
	default:
		return ""
	}
}

func (w Weekday) HolidayWeight() int {
	switch w {
	case Saturday, Sunday:
		return HolidayWeight
	default:
		return 0
	}
}

// Calendar table columns on a year sheet (0-indexed).
const (
	CalendarDateColumn = iota
	CalendarWeekdayColumn
	CalendarHolidayColumn
	CalendarLevelColumn
	CalendarCommentColumn

	CalendarColumnCount
)

// CalendarHeader holds the header labels of the calendar table.
var CalendarHeader = [CalendarColumnCount]string{"date", "weekday", "holiday", "level", "comment"}

// CalendarDay is one date of a YearCalendar with the matched record, if any.
type CalendarDay struct {
	Date    time.Time
	Level   *Level
	Comment *string
	Weekday Weekday
	Holiday int
}

// YearCalendar is the dense day-by-day axis of one year, Jan 1 through Dec 31.
type YearCalendar struct {
	Year int
	Days []CalendarDay
}

// Month returns the contiguous slice of days belonging to month m.
func (c YearCalendar) Month(m time.Month) []CalendarDay {
	first, last := -1, -1
	for i, d := range c.Days {
		if d.Date.Month() != m {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return nil
	}
	return c.Days[first : last+1]
}

// MonthIndex returns the position of the first day of month m within Days, or -1.
func (c YearCalendar) MonthIndex(m time.Month) int {
	for i, d := range c.Days {
		if d.Date.Month() == m {
			return i
		}
	}
	return -1
}

func MonthLabel(m time.Month) string {
	return fmt.Sprintf("%d月", int(m))
}
