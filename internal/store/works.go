package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/mesai/internal/model"
	"github.com/sadopc/mesai/internal/timeline"
)

const workColumns = `id, employee_id, employee_name, work_type, start_time, end_time, duration, video_link, is_first_video`

// CreateWork inserts a new in-progress session. The caller provides employee
// identity, kind and start time; end time and duration are set on completion
// only.
func (s *Store) CreateWork(employeeID, employeeName string, workType model.WorkType, startTime time.Time, isFirstVideo bool) (*model.Work, error) {
	id := uuid.NewString()
	first := 0
	if isFirstVideo {
		first = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO works (id, employee_id, employee_name, work_type, start_time, is_first_video)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, employeeID, employeeName, string(workType), startTime.UTC().Format(time.RFC3339), first,
	)
	if err != nil {
		return nil, fmt.Errorf("insert work: %w", err)
	}
	return s.GetWork(id)
}

func (s *Store) GetWork(id string) (*model.Work, error) {
	row := s.db.QueryRow(`SELECT `+workColumns+` FROM works WHERE id = ?`, id)
	w, err := scanWork(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get work %s: %w", id, err)
	}
	return w, nil
}

// ListWorks returns every session ordered by start time.
func (s *Store) ListWorks() ([]model.Work, error) {
	rows, err := s.db.Query(`SELECT ` + workColumns + ` FROM works ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	defer rows.Close()

	var works []model.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		works = append(works, *w)
	}
	return works, rows.Err()
}

// ListCompletedWorks returns an employee's completed sessions.
func (s *Store) ListCompletedWorks(employeeID string) ([]model.Work, error) {
	rows, err := s.db.Query(
		`SELECT `+workColumns+` FROM works WHERE employee_id = ? AND end_time IS NOT NULL ORDER BY start_time`,
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completed works: %w", err)
	}
	defer rows.Close()

	var works []model.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		works = append(works, *w)
	}
	return works, rows.Err()
}

// CompleteWork sets the end timestamp and optional video link. The stored
// duration is the raw end-start span in H:MM:SS form. Completing a completed
// work fails: the state is terminal.
func (s *Store) CompleteWork(id string, endTime time.Time, videoLink string) (*model.Work, error) {
	w, err := s.GetWork(id)
	if err != nil {
		return nil, err
	}
	if w.EndTime != nil {
		return nil, ErrAlreadyCompleted
	}

	duration := timeline.ClockString(endTime.Sub(w.StartTime))
	_, err = s.db.Exec(
		`UPDATE works SET end_time = ?, duration = ?, video_link = ? WHERE id = ?`,
		endTime.UTC().Format(time.RFC3339), duration, videoLink, id,
	)
	if err != nil {
		return nil, fmt.Errorf("complete work %s: %w", id, err)
	}
	return s.GetWork(id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWork(row scanner) (*model.Work, error) {
	w := &model.Work{}
	var workType, startTime string
	var endTime sql.NullString
	var first int

	err := row.Scan(&w.ID, &w.EmployeeID, &w.EmployeeName, &workType, &startTime,
		&endTime, &w.Duration, &w.VideoLink, &first)
	if err != nil {
		return nil, err
	}

	w.Type = model.WorkType(workType)
	w.IsFirstVideo = first == 1
	// Times come back in local form: the working-hours math and day
	// bucketing both reason about wall-clock hours.
	start, _ := time.Parse(time.RFC3339, startTime)
	w.StartTime = start.Local()
	if endTime.Valid {
		t, _ := time.Parse(time.RFC3339, endTime.String)
		t = t.Local()
		w.EndTime = &t
	}
	return w, nil
}
