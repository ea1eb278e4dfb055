// Package tui holds the Bubble Tea models of the admin dashboard and the
// employee console. Both poll the backend on a timer and replace their whole
// view state from immutable snapshot messages, so a render never observes a
// half-applied refresh.
package tui

import (
	"time"

	"github.com/sadopc/mesai/internal/model"
)

// tabState is the active admin tab.
type tabState int

const (
	tabTimeline tabState = iota
	tabWorks
	tabRoster
	tabReports
)

var tabNames = []string{"Timeline", "İşler", "Personel", "Rapor"}

// Polling cadence. The admin sees everyone and refreshes faster.
const (
	adminPollInterval   = 30 * time.Second
	consolePollInterval = 60 * time.Second
)

// --- Messages ---

// adminDataMsg is one complete dashboard snapshot. seq orders snapshots:
// responses that arrive out of order are dropped instead of rolling the view
// back to older data.
type adminDataMsg struct {
	seq       uint64
	works     []model.Work
	employees []model.Employee
	stats     map[string]model.WorkStats
	notice    string
}

// consoleDataMsg is one complete console snapshot.
type consoleDataMsg struct {
	seq       uint64
	works     []model.Work
	employees []model.Employee
	notice    string
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
