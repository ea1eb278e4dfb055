package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWorkStatusDerivation(t *testing.T) {
	w := Work{StartTime: time.Now()}
	if w.Status() != StatusInProgress {
		t.Fatal("work without end time should be in_progress")
	}

	end := w.StartTime.Add(time.Hour)
	w.EndTime = &end
	if w.Status() != StatusCompleted {
		t.Fatal("work with end time should be completed")
	}
}

func TestWorkEffectiveEnd(t *testing.T) {
	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)

	w := Work{StartTime: start}
	if !w.EffectiveEnd(now).Equal(now) {
		t.Fatal("in-progress work should use now as effective end")
	}

	end := start.Add(time.Hour)
	w.EndTime = &end
	if !w.EffectiveEnd(now).Equal(end) {
		t.Fatal("completed work should use its own end time")
	}
}

func TestWorkMarshalIncludesStatus(t *testing.T) {
	w := Work{ID: "w1", EmployeeID: "e1", Type: WorkSoftware, StartTime: time.Now()}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"status":"in_progress"`) {
		t.Fatalf("marshaled work missing derived status: %s", data)
	}

	end := w.StartTime.Add(time.Minute)
	w.EndTime = &end
	data, _ = json.Marshal(w)
	if !strings.Contains(string(data), `"status":"completed"`) {
		t.Fatalf("marshaled work missing completed status: %s", data)
	}
}

func TestWorkUnmarshalIgnoresStoredStatus(t *testing.T) {
	// A stored status that contradicts the end timestamp must not win.
	raw := `{"id":"w1","employeeId":"e1","workType":"video","startTime":"2025-03-10T09:00:00Z","status":"completed"}`
	var w Work
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatal(err)
	}
	if w.Status() != StatusInProgress {
		t.Fatal("status must derive from end-time presence only")
	}
}
