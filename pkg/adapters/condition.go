package adapters

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
	"github.com/de-tools/condition-atlas/pkg/models/store"
)

var dateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
}

// MapStoreRowToDomainRecord types a raw row. Unparseable level or comment fields become nil;
// ok is false when the date cannot be parsed, in which case the row must be dropped.
func MapStoreRowToDomainRecord(row store.ConditionRow) (domain.ConditionRecord, bool) {
	date, ok := ParseDate(row.Date)
	if !ok {
		return domain.ConditionRecord{}, false
	}
	return domain.ConditionRecord{
		Date:    date,
		Level:   ParseLevel(row.Level),
		Comment: ParseComment(row.Comment),
	}, true
}

// ParseDate accepts the export's date formats, optionally followed by a time of day,
// which is discarded.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Date(t), true
		}
	}
	return time.Time{}, false
}

// ParseLevel returns nil unless s is an integral value inside the level scale.
func ParseLevel(s string) *domain.Level {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil
	}
	l := domain.Level(v)
	if !l.Valid() {
		return nil
	}
	return &l
}

func ParseComment(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
