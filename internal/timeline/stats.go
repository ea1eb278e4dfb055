package timeline

import "github.com/sadopc/mesai/internal/model"

// Stats aggregates one day bucket for the admin header.
type Stats struct {
	Total       int
	Completed   int
	Active      int
	AvgDuration string
}

// DayStats counts the bucket by status and averages the duration of
// completed works that carry a parseable duration string. With no
// qualifying work the average shows a placeholder dash.
func DayStats(bucket []model.Work) Stats {
	st := Stats{Total: len(bucket), AvgDuration: "-"}
	sum, n := 0, 0
	for _, w := range bucket {
		if w.Status() == model.StatusCompleted {
			st.Completed++
			if m, ok := ParseMinutes(w.Duration); ok {
				sum += m
				n++
			}
		} else {
			st.Active++
		}
	}
	if n > 0 {
		// Whole-minute truncation, same as the duration parser.
		st.AvgDuration = FormatMinutes(sum / n)
	}
	return st
}
