package timeline

import (
	"fmt"
	"time"

	"github.com/sadopc/mesai/internal/model"
)

// Display window of the hourly timeline, inclusive on both ends.
const (
	DayStartHour = 9
	DayEndHour   = 18
)

// Hours lists the hour slots of the display window in order.
func Hours() []int {
	hours := make([]int, 0, DayEndHour-DayStartHour+1)
	for h := DayStartHour; h <= DayEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Bar is one visual segment inside an hour cell, positioned as percentages
// of the cell width.
type Bar struct {
	Left  float64
	Width float64
	Work  model.Work
}

// Bars selects the works of one employee that touch the given hour slot and
// computes their position within the cell. A work touches a slot when it
// starts there, ends there, or spans it entirely. In-progress works take now
// as their effective end, so their bar grows with every render.
func Bars(works []model.Work, employeeID string, hour int, now time.Time) []Bar {
	var bars []Bar
	for _, w := range works {
		if w.EmployeeID != employeeID {
			continue
		}
		start := w.StartTime
		end := w.EffectiveEnd(now)
		sh, eh := start.Hour(), end.Hour()
		if sh != hour && eh != hour && !(sh < hour && eh > hour) {
			continue
		}

		left, width := 0.0, 100.0
		if sh == hour {
			left = float64(start.Minute()) / 60 * 100
			width = 100 - left
		}
		if eh == hour {
			width = float64(end.Minute()) / 60 * 100
		}
		if sh == hour && eh == hour {
			left = float64(start.Minute()) / 60 * 100
			width = float64(end.Minute()-start.Minute()) / 60 * 100
		}

		bars = append(bars, Bar{Left: left, Width: width, Work: w})
	}
	return bars
}

// BarTooltip describes a bar: kind, start time, end time or ongoing marker,
// and elapsed duration for completed work.
func BarTooltip(w model.Work) string {
	kind := TypeLabel(w.Type)
	start := w.StartTime.Format("15:04")
	if w.EndTime == nil {
		return fmt.Sprintf("%s · Başlangıç: %s · Devam Ediyor", kind, start)
	}
	mins := int(w.EndTime.Sub(w.StartTime).Minutes())
	return fmt.Sprintf("%s · Başlangıç: %s · Bitiş: %s · Süre: %s",
		kind, start, w.EndTime.Format("15:04"), FormatMinutes(mins))
}
