package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/mesai/internal/model"
)

func (s *Store) CreateEmployee(name string) (*model.Employee, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO employees (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return &model.Employee{ID: id, Name: name}, nil
}

func (s *Store) GetEmployee(id string) (*model.Employee, error) {
	e := &model.Employee{}
	err := s.db.QueryRow(
		`SELECT id, name FROM employees WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&e.ID, &e.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee %s: %w", id, err)
	}
	return e, nil
}

// ListEmployees returns the active roster. Soft-deleted employees are
// excluded so their historical works stay intact.
func (s *Store) ListEmployees() ([]model.Employee, error) {
	rows, err := s.db.Query(
		`SELECT id, name FROM employees WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// DeleteEmployee marks an employee deleted. The row stays for the works that
// reference it.
func (s *Store) DeleteEmployee(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE employees SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, id,
	)
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
