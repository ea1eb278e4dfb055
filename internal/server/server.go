// Package server exposes the mesai backend REST API over net/http.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sadopc/mesai/internal/store"
)

type Server struct {
	store *store.Store
	mux   *http.ServeMux
}

func New(s *store.Store) *Server {
	srv := &Server{store: s, mux: http.NewServeMux()}

	srv.mux.HandleFunc("GET /api/employees", srv.handleListEmployees)
	srv.mux.HandleFunc("POST /api/employees", srv.handleCreateEmployee)
	srv.mux.HandleFunc("DELETE /api/employees/{id}", srv.handleDeleteEmployee)
	srv.mux.HandleFunc("GET /api/work-stats/{employeeId}", srv.handleWorkStats)
	srv.mux.HandleFunc("GET /api/works", srv.handleListWorks)
	srv.mux.HandleFunc("POST /api/work", srv.handleStartWork)
	srv.mux.HandleFunc("PUT /api/work/{id}", srv.handleCompleteWork)

	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("mesai backend listening on %s", addr)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return httpSrv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("encode response: %v", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
