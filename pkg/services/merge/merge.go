package merge

import (
	"sort"
	"time"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

// Merge combines a previously saved series with a newer export. Records are keyed by date;
// when both inputs hold the same date the incoming record wins. Neither input is modified.
func Merge(existing, incoming domain.RecordSeries) domain.RecordSeries {
	byDate := make(map[time.Time]domain.ConditionRecord, len(existing)+len(incoming))
	for _, src := range []domain.RecordSeries{existing, incoming} {
		for _, r := range src {
			r.Date = domain.Date(r.Date)
			byDate[r.Date] = r
		}
	}

	merged := make(domain.RecordSeries, 0, len(byDate))
	for _, r := range byDate {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}
