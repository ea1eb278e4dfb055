// Package api is the REST client for the mesai backend. Every call takes a
// context, returns an explicit error on non-2xx responses and never retries:
// a failed call is terminal for that user action, the next poll tries again.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sadopc/mesai/internal/model"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Employees fetches the roster.
func (c *Client) Employees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := c.get(ctx, "/api/employees", &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// CreateEmployee adds a new employee to the roster.
func (c *Client) CreateEmployee(ctx context.Context, name string) (*model.Employee, error) {
	var created model.Employee
	body := map[string]string{"name": name}
	if err := c.send(ctx, http.MethodPost, "/api/employees", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteEmployee removes an employee from the roster.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/employees/"+id, nil, nil)
}

// Stats fetches the server-computed aggregate for one employee.
func (c *Client) Stats(ctx context.Context, employeeID string) (*model.WorkStats, error) {
	var stats model.WorkStats
	if err := c.get(ctx, "/api/work-stats/"+employeeID, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Works fetches the full work session list.
func (c *Client) Works(ctx context.Context) ([]model.Work, error) {
	var works []model.Work
	if err := c.get(ctx, "/api/works", &works); err != nil {
		return nil, err
	}
	return works, nil
}

// StartWorkRequest is the POST /api/work body.
type StartWorkRequest struct {
	EmployeeID   string         `json:"employeeId"`
	EmployeeName string         `json:"employeeName"`
	Type         model.WorkType `json:"workType"`
	StartTime    time.Time      `json:"startTime"`
	IsFirstVideo bool           `json:"isFirstVideo"`
}

// StartWork creates an in-progress session.
func (c *Client) StartWork(ctx context.Context, req StartWorkRequest) (*model.Work, error) {
	var created model.Work
	if err := c.send(ctx, http.MethodPost, "/api/work", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CompleteWork sets the end timestamp and optional video link, flipping the
// session to completed.
func (c *Client) CompleteWork(ctx context.Context, id string, endTime time.Time, videoLink string) error {
	body := map[string]any{"endTime": endTime, "videoLink": videoLink}
	return c.send(ctx, http.MethodPut, "/api/work/"+id, body, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api returned status %d: %s", resp.StatusCode, snippet(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func snippet(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
