package store

import (
	"github.com/sadopc/mesai/internal/model"
	"github.com/sadopc/mesai/internal/timeline"
)

// EmployeeStats aggregates an employee's completed sessions into per-kind
// average durations. Durations are measured against the 09:00-18:00 working
// window (lunch hour excluded) and works touching a weekend are left out
// entirely, so overnight sessions do not inflate the averages.
func (s *Store) EmployeeStats(employeeID string) (*model.WorkStats, error) {
	works, err := s.ListCompletedWorks(employeeID)
	if err != nil {
		return nil, err
	}

	var videoMin, videoN, softwareMin, softwareN int
	for _, w := range works {
		if timeline.IsWeekend(w.StartTime) || timeline.IsWeekend(*w.EndTime) {
			continue
		}
		minutes := timeline.WorkdayMinutes(w.StartTime, *w.EndTime)
		switch w.Type {
		case model.WorkVideo:
			videoMin += minutes
			videoN++
		case model.WorkSoftware:
			softwareMin += minutes
			softwareN++
		}
	}

	stats := &model.WorkStats{TotalWorks: videoN + softwareN}
	if videoN > 0 {
		stats.AverageVideoDuration = timeline.FormatMinutes(videoMin / videoN)
	}
	if softwareN > 0 {
		stats.AverageSoftwareDuration = timeline.FormatMinutes(softwareMin / softwareN)
	}
	return stats, nil
}
