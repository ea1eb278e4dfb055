package model

import (
	"encoding/json"
	"time"
)

// WorkType is the kind of work a session tracks.
type WorkType string

const (
	WorkSoftware WorkType = "software"
	WorkVideo    WorkType = "video"
)

// Status of a work session. Derived from end-time presence, never stored.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Work is one tracked unit of work, bounded by a start and optional end.
type Work struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Type         WorkType   `json:"workType"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	VideoLink    string     `json:"videoLink,omitempty"`
	IsFirstVideo bool       `json:"isFirstVideo,omitempty"`
}

// Status derives the session state from end-time presence. There is no
// stored status field that could drift from the end timestamp.
func (w Work) Status() Status {
	if w.EndTime == nil {
		return StatusInProgress
	}
	return StatusCompleted
}

// EffectiveEnd is the end time of a completed session, otherwise now.
func (w Work) EffectiveEnd(now time.Time) time.Time {
	if w.EndTime != nil {
		return *w.EndTime
	}
	return now
}

// MarshalJSON adds the derived status field so API consumers can read it
// without re-deriving. Incoming status is ignored on unmarshal.
func (w Work) MarshalJSON() ([]byte, error) {
	type alias Work
	return json.Marshal(struct {
		alias
		Status Status `json:"status"`
	}{alias(w), w.Status()})
}

// WorkStats is the per-employee aggregate computed by the backend. The
// client displays it verbatim.
type WorkStats struct {
	AverageVideoDuration    string `json:"averageVideoDuration"`
	AverageSoftwareDuration string `json:"averageSoftwareDuration"`
	TotalWorks              int    `json:"totalWorks"`
}
