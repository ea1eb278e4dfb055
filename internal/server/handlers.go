package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sadopc/mesai/internal/model"
	"github.com/sadopc/mesai/internal/store"
)

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.ListEmployees()
	if err != nil {
		log.Printf("list employees: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list employees")
		return
	}
	if employees == nil {
		employees = []model.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	employee, err := s.store.CreateEmployee(req.Name)
	if err != nil {
		log.Printf("create employee: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create employee")
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.store.DeleteEmployee(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	if err != nil {
		log.Printf("delete employee %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not delete employee")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleWorkStats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("employeeId")
	stats, err := s.store.EmployeeStats(id)
	if err != nil {
		log.Printf("work stats %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListWorks(w http.ResponseWriter, r *http.Request) {
	works, err := s.store.ListWorks()
	if err != nil {
		log.Printf("list works: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list works")
		return
	}
	if works == nil {
		works = []model.Work{}
	}
	writeJSON(w, http.StatusOK, works)
}

func (s *Server) handleStartWork(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID   string         `json:"employeeId"`
		EmployeeName string         `json:"employeeName"`
		Type         model.WorkType `json:"workType"`
		StartTime    time.Time      `json:"startTime"`
		IsFirstVideo bool           `json:"isFirstVideo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return
	}
	if req.Type != model.WorkSoftware && req.Type != model.WorkVideo {
		writeError(w, http.StatusBadRequest, "unknown work type")
		return
	}
	if req.StartTime.IsZero() {
		req.StartTime = time.Now()
	}

	work, err := s.store.CreateWork(req.EmployeeID, req.EmployeeName, req.Type, req.StartTime, req.IsFirstVideo)
	if err != nil {
		log.Printf("start work: %v", err)
		writeError(w, http.StatusInternalServerError, "could not start work")
		return
	}
	writeJSON(w, http.StatusCreated, work)
}

func (s *Server) handleCompleteWork(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		EndTime   time.Time `json:"endTime"`
		VideoLink string    `json:"videoLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EndTime.IsZero() {
		req.EndTime = time.Now()
	}

	work, err := s.store.CompleteWork(id, req.EndTime, req.VideoLink)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "work not found")
		return
	}
	if errors.Is(err, store.ErrAlreadyCompleted) {
		writeError(w, http.StatusConflict, "work already completed")
		return
	}
	if err != nil {
		log.Printf("complete work %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not complete work")
		return
	}
	writeJSON(w, http.StatusOK, work)
}
