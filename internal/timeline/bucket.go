// Package timeline holds the view-model logic of the dashboard: bucketing
// work sessions onto a calendar day, laying out the hourly timeline,
// aggregating day statistics and filtering by status. Everything here is a
// pure function of its inputs so it can be tested without a terminal or a
// backend.
package timeline

import (
	"time"

	"github.com/sadopc/mesai/internal/model"
)

// DayBucket returns the subsequence of works whose start time falls on the
// given calendar day, compared in day's location with the time of day
// discarded. Order is preserved.
func DayBucket(works []model.Work, day time.Time) []model.Work {
	y, m, d := day.Date()
	var bucket []model.Work
	for _, w := range works {
		wy, wm, wd := w.StartTime.In(day.Location()).Date()
		if wy == y && wm == m && wd == d {
			bucket = append(bucket, w)
		}
	}
	return bucket
}

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
