package timeline

import "time"

// Lunch break, excluded from working-time calculations.
const (
	lunchStartHour = 12
	lunchEndHour   = 13
)

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkdayMinutes measures the span between start and end clipped to the
// 09:00-18:00 working window, skipping the lunch hour. Spans across several
// days count 8 hours per full weekday in between.
func WorkdayMinutes(start, end time.Time) int {
	startDay := Midnight(start)
	endDay := Midnight(end)

	if startDay.Equal(endDay) {
		return singleDayMinutes(start, end)
	}

	total := singleDayMinutes(start, atHour(start, DayEndHour))
	total += singleDayMinutes(atHour(end, DayStartHour), end)

	for day := startDay.AddDate(0, 0, 1); day.Before(endDay); day = day.AddDate(0, 0, 1) {
		if !IsWeekend(day) {
			total += 8 * 60
		}
	}
	return total
}

func singleDayMinutes(start, end time.Time) int {
	if start.Hour() < DayStartHour {
		start = atHour(start, DayStartHour)
	}
	if end.Hour() >= DayEndHour {
		end = atHour(end, DayEndHour)
	}
	if end.Before(start) {
		return 0
	}

	minutes := 0
	for cur := start; cur.Before(end); {
		hour := cur.Hour()
		if hour >= lunchStartHour && hour < lunchEndHour {
			cur = atHour(cur, lunchEndHour)
			continue
		}
		if hour >= DayStartHour && hour < DayEndHour {
			next := cur.Add(time.Hour)
			if next.After(end) {
				minutes += int(end.Sub(cur).Minutes())
			} else {
				minutes += 60
			}
		}
		cur = cur.Add(time.Hour)
	}
	return minutes
}

func atHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}
