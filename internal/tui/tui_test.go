package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/mesai/internal/api"
	"github.com/sadopc/mesai/internal/model"
	"github.com/sadopc/mesai/internal/timeline"
)

// No test here talks to a server: everything exercises the pure decision
// paths of the models.
func newTestAdmin() AdminModel {
	return NewAdmin(api.New("http://127.0.0.1:0"))
}

func newTestConsole() ConsoleModel {
	return NewConsole(api.New("http://127.0.0.1:0"))
}

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
}

func work(id, employeeID string, start time.Time, end *time.Time) model.Work {
	return model.Work{
		ID:           id,
		EmployeeID:   employeeID,
		EmployeeName: "Test",
		Type:         model.WorkSoftware,
		StartTime:    start,
		EndTime:      end,
	}
}

// ============================================================
// Snapshot sequencing
// ============================================================

func TestAdminAppliesNewerSnapshot(t *testing.T) {
	m := newTestAdmin()
	m = m.applySnapshot(adminDataMsg{seq: 1, employees: []model.Employee{{ID: "e1", Name: "Ayşe"}}})

	if m.lastApplied != 1 {
		t.Fatalf("lastApplied = %d, want 1", m.lastApplied)
	}
	if len(m.employees) != 1 {
		t.Fatalf("employees = %d, want 1", len(m.employees))
	}
}

func TestAdminDiscardsStaleSnapshot(t *testing.T) {
	m := newTestAdmin()
	m = m.applySnapshot(adminDataMsg{seq: 2, employees: []model.Employee{{ID: "e1", Name: "Ayşe"}}})

	// A slow response from an earlier fetch arrives afterwards.
	m = m.applySnapshot(adminDataMsg{seq: 1, employees: nil})

	if m.lastApplied != 2 {
		t.Fatalf("lastApplied = %d, want 2", m.lastApplied)
	}
	if len(m.employees) != 1 {
		t.Fatal("stale snapshot must not replace newer data")
	}
}

func TestAdminDiscardsDuplicateSnapshot(t *testing.T) {
	m := newTestAdmin()
	m = m.applySnapshot(adminDataMsg{seq: 1, employees: []model.Employee{{ID: "e1", Name: "Ayşe"}}})
	m = m.applySnapshot(adminDataMsg{seq: 1, employees: nil})

	if len(m.employees) != 1 {
		t.Fatal("same-seq snapshot must be dropped")
	}
}

func TestConsoleDiscardsStaleSnapshot(t *testing.T) {
	m := newTestConsole()
	m = m.applySnapshot(consoleDataMsg{seq: 3, employees: []model.Employee{{ID: "e1", Name: "Ayşe"}}})
	m = m.applySnapshot(consoleDataMsg{seq: 2, employees: nil})

	if len(m.employees) != 1 {
		t.Fatal("stale snapshot must not replace newer data")
	}
}

func TestNextFetchIncrementsSeq(t *testing.T) {
	m := newTestAdmin()
	before := m.seq
	cmd := m.nextFetch()
	if cmd == nil {
		t.Fatal("nextFetch should return a command")
	}
	if m.seq != before+1 {
		t.Fatalf("seq = %d, want %d", m.seq, before+1)
	}
}

// ============================================================
// Day navigation
// ============================================================

func TestSetDayRederivesBucket(t *testing.T) {
	monday := day(2025, time.March, 10)
	tuesday := day(2025, time.March, 11)

	m := newTestAdmin()
	m = m.applySnapshot(adminDataMsg{seq: 1, works: []model.Work{
		work("w1", "e1", monday.Add(9*time.Hour), nil),
		work("w2", "e1", tuesday.Add(10*time.Hour), nil),
	}})

	m = m.setDay(monday)
	if len(m.bucket) != 1 || m.bucket[0].ID != "w1" {
		t.Fatalf("monday bucket = %v", m.bucket)
	}

	m = m.setDay(tuesday)
	if len(m.bucket) != 1 || m.bucket[0].ID != "w2" {
		t.Fatalf("tuesday bucket = %v", m.bucket)
	}
}

func TestSetDayResetsCursor(t *testing.T) {
	m := newTestAdmin()
	m.workCursor = 5
	m = m.setDay(day(2025, time.March, 10))
	if m.workCursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.workCursor)
	}
}

// ============================================================
// Filter
// ============================================================

func TestFilteredBucketNarrowsWorkList(t *testing.T) {
	monday := day(2025, time.March, 10)
	end := monday.Add(10 * time.Hour)

	m := newTestAdmin()
	m.day = monday
	m = m.applySnapshot(adminDataMsg{seq: 1, works: []model.Work{
		work("w1", "e1", monday.Add(9*time.Hour), &end),
		work("w2", "e1", monday.Add(11*time.Hour), nil),
	}})

	m.filter = timeline.FilterActive
	got := m.filteredBucket()
	if len(got) != 1 || got[0].ID != "w2" {
		t.Fatalf("active filter = %v", got)
	}

	// The stats line stays on the unfiltered bucket.
	m.width = 100
	line := m.renderStatsLine()
	if !strings.Contains(line, "2") {
		t.Fatalf("stats line should count both works: %q", line)
	}
}

// ============================================================
// Local validation (no request leaves the model)
// ============================================================

func TestAddEmployeeEmptyNameSendsNothing(t *testing.T) {
	m := newTestAdmin()
	*m.formName = "   "

	m2, cmd := m.submitAddEmployee()
	if cmd != nil {
		t.Fatal("empty name must not produce a request command")
	}
	if !m2.statusErr {
		t.Fatal("expected an error status")
	}
}

func TestAddEmployeeValidNameSendsRequest(t *testing.T) {
	m := newTestAdmin()
	*m.formName = "Ayşe"

	_, cmd := m.submitAddEmployee()
	if cmd == nil {
		t.Fatal("valid name should produce a request command")
	}
}

func TestDeleteDeclinedSendsNothing(t *testing.T) {
	m := newTestAdmin()
	m.deletingID = "e1"
	*m.formConfirm = false

	_, cmd := m.submitDeleteEmployee()
	if cmd != nil {
		t.Fatal("declined confirm must not produce a request command")
	}
}

func TestDeleteConfirmedSendsRequest(t *testing.T) {
	m := newTestAdmin()
	m.deletingID = "e1"
	*m.formConfirm = true

	_, cmd := m.submitDeleteEmployee()
	if cmd == nil {
		t.Fatal("accepted confirm should produce a request command")
	}
}

// The write paths chain a numbered refresh behind the mutation, so a
// successful create or delete lands as the next snapshot.
func TestWritePathsReserveSequence(t *testing.T) {
	m := newTestAdmin()
	*m.formName = "Ayşe"
	before := m.seq
	m2, cmd := m.submitAddEmployee()
	if cmd == nil {
		t.Fatal("expected a request command")
	}
	if m2.seq != before+1 {
		t.Fatalf("seq = %d, want %d", m2.seq, before+1)
	}

	m2.deletingID = "e1"
	*m2.formConfirm = true
	m3, cmd := m2.submitDeleteEmployee()
	if cmd == nil {
		t.Fatal("expected a request command")
	}
	if m3.seq != m2.seq+1 {
		t.Fatalf("seq = %d, want %d", m3.seq, m2.seq+1)
	}
}

func TestCompleteVideoWithoutLinkSendsNothing(t *testing.T) {
	m := newTestConsole()
	m.completingID = "w1"
	m.completingKind = model.WorkVideo
	*m.formVideoLink = "  "

	m2, cmd := m.submitComplete()
	if cmd != nil {
		t.Fatal("video completion without link must not produce a request")
	}
	if !m2.statusErr {
		t.Fatal("expected an error status")
	}
}

func TestCompleteVideoWithLinkSendsRequest(t *testing.T) {
	m := newTestConsole()
	m.completingID = "w1"
	m.completingKind = model.WorkVideo
	*m.formVideoLink = "https://video.example/1"

	_, cmd := m.submitComplete()
	if cmd == nil {
		t.Fatal("video completion with link should produce a request")
	}
}

func TestCompleteSoftwareWithoutLinkSendsRequest(t *testing.T) {
	m := newTestConsole()
	m.completingID = "w1"
	m.completingKind = model.WorkSoftware
	*m.formVideoLink = ""

	_, cmd := m.submitComplete()
	if cmd == nil {
		t.Fatal("software completion needs no link")
	}
}

func TestCompleteSoftwareOpensConfirm(t *testing.T) {
	m := newTestConsole()
	monday := day(2025, time.March, 10)

	m2, _ := m.showCompleteForm(work("w1", "e1", monday.Add(9*time.Hour), nil))
	c := m2.(ConsoleModel)
	if !c.formActive || c.form == nil {
		t.Fatal("software completion should open a confirm form, not fire directly")
	}
	if c.formType != "complete_confirm" {
		t.Fatalf("formType = %q, want complete_confirm", c.formType)
	}
}

func TestCompleteDeclinedSendsNothing(t *testing.T) {
	m := newTestConsole()
	m.completingID = "w1"
	m.completingKind = model.WorkSoftware
	*m.formConfirm = false

	_, cmd := m.submitCompleteConfirmed()
	if cmd != nil {
		t.Fatal("declined confirm must not produce a request command")
	}
}

func TestCompleteConfirmedSendsRequest(t *testing.T) {
	m := newTestConsole()
	m.completingID = "w1"
	m.completingKind = model.WorkSoftware
	*m.formConfirm = true

	_, cmd := m.submitCompleteConfirmed()
	if cmd == nil {
		t.Fatal("accepted confirm should produce a request command")
	}
}

func TestStartWithoutEmployeeSendsNothing(t *testing.T) {
	m := newTestConsole()
	*m.formEmployeeID = "ghost"

	m2, cmd := m.submitStart()
	if cmd != nil {
		t.Fatal("unknown employee must not produce a request")
	}
	if !m2.statusErr {
		t.Fatal("expected an error status")
	}
}

func TestStartFirstVideoOnlyForVideo(t *testing.T) {
	m := newTestConsole()
	m = m.applySnapshot(consoleDataMsg{seq: 1, employees: []model.Employee{{ID: "e1", Name: "Ayşe"}}})
	*m.formEmployeeID = "e1"
	*m.formWorkType = string(model.WorkSoftware)
	*m.formFirstVideo = true

	_, cmd := m.submitStart()
	if cmd == nil {
		t.Fatal("start should produce a request command")
	}
}

// ============================================================
// Rendering
// ============================================================

func TestRenderHourCellFullHour(t *testing.T) {
	monday := day(2025, time.March, 10)
	end := monday.Add(11 * time.Hour)
	bucket := []model.Work{work("w1", "e1", monday.Add(10*time.Hour), &end)}

	cell := renderHourCell(bucket, "e1", 10, monday.Add(12*time.Hour))
	if !strings.Contains(cell, "█") {
		t.Fatalf("full-hour cell should contain bar glyphs: %q", cell)
	}
	if strings.Contains(cell, "·") {
		t.Fatalf("full-hour cell should have no empty columns: %q", cell)
	}
}

func TestRenderHourCellEmpty(t *testing.T) {
	cell := renderHourCell(nil, "e1", 10, time.Now())
	if strings.Contains(cell, "█") {
		t.Fatalf("empty cell should not contain bars: %q", cell)
	}
}

func TestRenderHourCellHalfHour(t *testing.T) {
	monday := day(2025, time.March, 10)
	end := monday.Add(10*time.Hour + 30*time.Minute)
	bucket := []model.Work{work("w1", "e1", monday.Add(10*time.Hour), &end)}

	cell := renderHourCell(bucket, "e1", 10, end)
	bars := strings.Count(cell, "█")
	if bars != timelineCellWidth/2 {
		t.Fatalf("half-hour bar = %d columns, want %d", bars, timelineCellWidth/2)
	}
}

func TestAdminLoadingState(t *testing.T) {
	m := newTestAdmin()
	if m.View() != "Yükleniyor..." {
		t.Fatalf("zero-width view = %q", m.View())
	}
}

func TestConsoleLoadingState(t *testing.T) {
	m := newTestConsole()
	if m.View() != "Yükleniyor..." {
		t.Fatalf("zero-width view = %q", m.View())
	}
}

func TestAdminViewRenders(t *testing.T) {
	monday := day(2025, time.March, 10)
	m := newTestAdmin()
	m.width = 120
	m.height = 40
	m.day = monday
	m = m.applySnapshot(adminDataMsg{
		seq:       1,
		employees: []model.Employee{{ID: "e1", Name: "Ayşe"}},
		works:     []model.Work{work("w1", "e1", monday.Add(9*time.Hour), nil)},
		stats:     map[string]model.WorkStats{"e1": {TotalWorks: 3}},
	})

	view := m.View()
	if !strings.Contains(view, "mesai") {
		t.Fatal("view should contain the app title")
	}
	if !strings.Contains(view, "Timeline") {
		t.Fatal("view should contain the tab row")
	}
	if !strings.Contains(view, "Ayşe") {
		t.Fatal("view should contain the employee row")
	}
}

func TestConsoleViewRenders(t *testing.T) {
	m := newTestConsole()
	m.width = 100
	m.height = 30
	m = m.applySnapshot(consoleDataMsg{
		seq:   1,
		works: []model.Work{work("w1", "e1", timeline.Midnight(time.Now()).Add(9*time.Hour), nil)},
	})

	view := m.View()
	if !strings.Contains(view, "Bugünün İşleri") {
		t.Fatal("view should contain the list title")
	}
	if !strings.Contains(view, "Devam Ediyor") {
		t.Fatal("in-progress work should show its status")
	}
}

func TestStatusNoticeFromSnapshot(t *testing.T) {
	m := newTestAdmin()
	m = m.applySnapshot(adminDataMsg{seq: 1, notice: "Personel eklendi: Ayşe"})
	if m.status != "Personel eklendi: Ayşe" {
		t.Fatalf("status = %q", m.status)
	}
	if m.statusErr {
		t.Fatal("notice is not an error")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestClampCursor(t *testing.T) {
	cases := []struct {
		cursor, n, want int
	}{
		{0, 0, 0},
		{3, 2, 1},
		{-1, 5, 0},
		{1, 5, 1},
	}
	for _, c := range cases {
		if got := clampCursor(c.cursor, c.n); got != c.want {
			t.Fatalf("clampCursor(%d, %d) = %d, want %d", c.cursor, c.n, got, c.want)
		}
	}
}

func TestCompletedMinutes(t *testing.T) {
	monday := day(2025, time.March, 10)
	end := monday.Add(10 * time.Hour)

	w1 := work("w1", "e1", monday.Add(9*time.Hour), &end)
	w1.Duration = "1:00:00"
	w2 := work("w2", "e1", monday.Add(11*time.Hour), nil) // running
	w3 := work("w3", "e1", monday.Add(13*time.Hour), &end)
	w3.Duration = "garbage"

	got := completedMinutes([]model.Work{w1, w2, w3})
	if got != 60 {
		t.Fatalf("completedMinutes = %d, want 60", got)
	}
}

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should not be empty")
	}
	if len(keys.FullHelp()) == 0 {
		t.Fatal("full help should not be empty")
	}
}

func TestTabNames(t *testing.T) {
	if len(tabNames) != 4 {
		t.Fatalf("expected 4 tabs, got %d", len(tabNames))
	}
}
