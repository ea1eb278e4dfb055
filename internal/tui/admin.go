package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mesai/internal/api"
	"github.com/sadopc/mesai/internal/export"
	"github.com/sadopc/mesai/internal/model"
	"github.com/sadopc/mesai/internal/timeline"
)

const timelineCellWidth = 6

// AdminModel is the dashboard: hourly timeline, work list, roster and
// reports, all derived from the selected day's bucket.
type AdminModel struct {
	client *api.Client
	width  int
	height int

	activeTab    tabState
	day          time.Time
	filter       timeline.StatusFilter
	workCursor   int
	rosterCursor int
	showHelp     bool

	// Snapshot sequencing: seq is the last issued fetch, lastApplied the
	// newest snapshot on screen. Anything older than lastApplied is stale.
	seq         uint64
	lastApplied uint64

	works     []model.Work
	bucket    []model.Work
	employees []model.Employee
	stats     map[string]model.WorkStats

	formActive  bool
	form        *huh.Form
	formType    string // "employee", "date", "confirm_delete"
	formName    *string
	formDate    *string
	formConfirm *bool

	deletingID   string
	deletingName string

	exportPicking bool
	exportCursor  int

	help      help.Model
	status    string
	statusErr bool
}

func NewAdmin(client *api.Client) AdminModel {
	h := help.New()
	h.ShowAll = false

	name, date, confirm := "", "", false
	return AdminModel{
		client:      client,
		day:         timeline.Midnight(time.Now()),
		seq:         1,
		stats:       map[string]model.WorkStats{},
		formName:    &name,
		formDate:    &date,
		formConfirm: &confirm,
		help:        h,
	}
}

func (m AdminModel) Init() tea.Cmd {
	client := m.client
	seq := m.seq
	return tea.Batch(
		func() tea.Msg { return fetchAdminSnapshot(client, seq, "") },
		adminTickCmd(),
	)
}

func adminTickCmd() tea.Cmd {
	return tea.Tick(adminPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// nextFetch reserves the next sequence number and returns the fetch command
// carrying it.
func (m *AdminModel) nextFetch() tea.Cmd {
	m.seq++
	seq := m.seq
	client := m.client
	return func() tea.Msg {
		return fetchAdminSnapshot(client, seq, "")
	}
}

// fetchAdminSnapshot pulls the roster, the full work list and per-employee
// stats in one go. A fetch error surfaces as a status notice and leaves the
// previous snapshot on screen.
func fetchAdminSnapshot(client *api.Client, seq uint64, notice string) tea.Msg {
	ctx := context.Background()

	employees, err := client.Employees(ctx)
	if err != nil {
		return statusMsg{text: "Personel listesi alınamadı: " + err.Error(), isError: true}
	}
	works, err := client.Works(ctx)
	if err != nil {
		return statusMsg{text: "İş listesi alınamadı: " + err.Error(), isError: true}
	}

	stats := make(map[string]model.WorkStats, len(employees))
	for _, e := range employees {
		s, err := client.Stats(ctx, e.ID)
		if err != nil {
			// One missing aggregate should not sink the whole refresh.
			continue
		}
		stats[e.ID] = *s
	}

	return adminDataMsg{seq: seq, works: works, employees: employees, stats: stats, notice: notice}
}

func (m AdminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		cmd := m.nextFetch()
		return m, tea.Batch(cmd, adminTickCmd())

	case adminDataMsg:
		return m.applySnapshot(msg), nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isError
		return m, nil

	case exportDoneMsg:
		m.status = "Dışa aktarıldı: " + msg.path
		m.statusErr = false
		m.exportPicking = false
		return m, nil

	case tea.KeyMsg:
		if m.formActive && m.form != nil {
			return m.updateForm(msg)
		}
		if m.exportPicking {
			return m.updateExportPicker(msg)
		}
		return m.updateKeys(msg)
	}

	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m AdminModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, keys.Tab1):
		m.activeTab = tabTimeline
		return m, nil
	case key.Matches(msg, keys.Tab2):
		m.activeTab = tabWorks
		return m, nil
	case key.Matches(msg, keys.Tab3):
		m.activeTab = tabRoster
		return m, nil
	case key.Matches(msg, keys.Tab4):
		m.activeTab = tabReports
		return m, nil
	case key.Matches(msg, keys.Tab):
		m.activeTab = (m.activeTab + 1) % 4
		return m, nil

	case key.Matches(msg, keys.PrevDay):
		m = m.setDay(m.day.AddDate(0, 0, -1))
		cmd := m.nextFetch()
		return m, cmd
	case key.Matches(msg, keys.NextDay):
		m = m.setDay(m.day.AddDate(0, 0, 1))
		cmd := m.nextFetch()
		return m, cmd
	case key.Matches(msg, keys.Today):
		m = m.setDay(time.Now())
		cmd := m.nextFetch()
		return m, cmd
	case key.Matches(msg, keys.GotoDate):
		return m.showDateForm()

	case key.Matches(msg, keys.Filter):
		m.filter = m.filter.Next()
		m.workCursor = 0
		return m, nil

	case key.Matches(msg, keys.Refresh):
		cmd := m.nextFetch()
		return m, cmd

	case key.Matches(msg, keys.Export):
		m.exportPicking = true
		m.exportCursor = 0
		return m, nil

	case key.Matches(msg, keys.New):
		if m.activeTab == tabRoster {
			return m.showEmployeeForm()
		}
	case key.Matches(msg, keys.Delete):
		if m.activeTab == tabRoster && len(m.employees) > 0 {
			return m.showDeleteConfirm()
		}

	case key.Matches(msg, keys.Up):
		switch m.activeTab {
		case tabWorks, tabTimeline:
			if m.workCursor > 0 {
				m.workCursor--
			}
		case tabRoster:
			if m.rosterCursor > 0 {
				m.rosterCursor--
			}
		}
	case key.Matches(msg, keys.Down):
		switch m.activeTab {
		case tabWorks:
			if m.workCursor < len(m.filteredBucket())-1 {
				m.workCursor++
			}
		case tabTimeline:
			if m.workCursor < len(m.employees)-1 {
				m.workCursor++
			}
		case tabRoster:
			if m.rosterCursor < len(m.employees)-1 {
				m.rosterCursor++
			}
		}
	}
	return m, nil
}

// setDay moves the selected day and re-derives the bucket from the works
// already in hand, so navigation never waits on the network.
func (m AdminModel) setDay(day time.Time) AdminModel {
	m.day = timeline.Midnight(day)
	m.bucket = timeline.DayBucket(m.works, m.day)
	m.workCursor = 0
	return m
}

func (m AdminModel) applySnapshot(msg adminDataMsg) AdminModel {
	if msg.seq <= m.lastApplied {
		return m
	}
	m.lastApplied = msg.seq
	m.works = msg.works
	m.employees = msg.employees
	m.stats = msg.stats
	m.bucket = timeline.DayBucket(m.works, m.day)
	m.workCursor = clampCursor(m.workCursor, len(m.filteredBucket()))
	m.rosterCursor = clampCursor(m.rosterCursor, len(m.employees))
	if msg.notice != "" {
		m.status = msg.notice
		m.statusErr = false
	}
	return m
}

func (m AdminModel) filteredBucket() []model.Work {
	return timeline.FilterByStatus(m.bucket, m.filter)
}

// --- Forms ---

func (m AdminModel) showEmployeeForm() (tea.Model, tea.Cmd) {
	*m.formName = ""
	m.formType = "employee"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Personel Adı").Value(m.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m AdminModel) showDateForm() (tea.Model, tea.Cmd) {
	*m.formDate = m.day.Format("2006-01-02")
	m.formType = "date"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tarih (YYYY-AA-GG)").
				Value(m.formDate).
				Validate(func(s string) error {
					_, err := time.ParseInLocation("2006-01-02", s, time.Local)
					return err
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m AdminModel) showDeleteConfirm() (tea.Model, tea.Cmd) {
	e := m.employees[m.rosterCursor]
	m.deletingID = e.ID
	m.deletingName = e.Name
	*m.formConfirm = false
	m.formType = "confirm_delete"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s silinsin mi?", e.Name)).
				Affirmative("Sil").
				Negative("Vazgeç").
				Value(m.formConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m AdminModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "employee":
			return m.submitAddEmployee()
		case "date":
			day, err := time.ParseInLocation("2006-01-02", *m.formDate, time.Local)
			if err != nil {
				m.status = "Geçersiz tarih"
				m.statusErr = true
				return m, nil
			}
			m = m.setDay(day)
			cmd := m.nextFetch()
			return m, cmd
		case "confirm_delete":
			return m.submitDeleteEmployee()
		}
	}
	return m, cmd
}

// submitAddEmployee validates locally before touching the network: an empty
// name never produces a request.
func (m AdminModel) submitAddEmployee() (AdminModel, tea.Cmd) {
	name := strings.TrimSpace(*m.formName)
	if name == "" {
		m.status = "Personel adı boş olamaz"
		m.statusErr = true
		return m, nil
	}

	m.seq++
	seq := m.seq
	client := m.client
	return m, func() tea.Msg {
		ctx := context.Background()
		if _, err := client.CreateEmployee(ctx, name); err != nil {
			return statusMsg{text: "Personel eklenemedi: " + err.Error(), isError: true}
		}
		return fetchAdminSnapshot(client, seq, "Personel eklendi: "+name)
	}
}

// submitDeleteEmployee issues the delete only when the confirm was accepted.
// Declining sends nothing.
func (m AdminModel) submitDeleteEmployee() (AdminModel, tea.Cmd) {
	if !*m.formConfirm {
		return m, nil
	}

	id, name := m.deletingID, m.deletingName
	m.seq++
	seq := m.seq
	client := m.client
	return m, func() tea.Msg {
		ctx := context.Background()
		if err := client.DeleteEmployee(ctx, id); err != nil {
			return statusMsg{text: "Personel silinemedi: " + err.Error(), isError: true}
		}
		return fetchAdminSnapshot(client, seq, "Personel silindi: "+name)
	}
}

// --- Export ---

var exportFormats = []string{"CSV", "JSON", "XLSX"}

func (m AdminModel) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.exportCursor > 0 {
			m.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.exportCursor < len(exportFormats)-1 {
			m.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.exportPicking = false
		return m, m.doExport(m.exportCursor)
	case key.Matches(msg, keys.Back):
		m.exportPicking = false
	}
	return m, nil
}

func (m AdminModel) doExport(format int) tea.Cmd {
	bucket := m.bucket
	day := m.day
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		base := fmt.Sprintf("mesai-%s", day.Format("2006-01-02"))

		var path string
		var err error
		switch format {
		case 0:
			path = filepath.Join(home, base+".csv")
			err = export.ToCSV(bucket, path)
		case 1:
			path = filepath.Join(home, base+".json")
			err = export.ToJSON(bucket, day, path)
		default:
			path = filepath.Join(home, base+".xlsx")
			err = export.ToXLSX(bucket, day, path)
		}
		if err != nil {
			return statusMsg{text: "Dışa aktarma hatası: " + err.Error(), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// --- View ---

func (m AdminModel) View() string {
	if m.width == 0 {
		return "Yükleniyor..."
	}

	header := m.renderHeader()
	statsLine := m.renderStatsLine()
	footer := m.renderFooter()

	var content string
	if m.formActive && m.form != nil {
		content = panelStyle.Width(m.width - 4).Render(m.form.View())
	} else if m.exportPicking {
		content = m.renderExportPicker()
	} else {
		switch m.activeTab {
		case tabTimeline:
			content = m.renderTimeline()
		case tabWorks:
			content = m.renderWorkList()
		case tabRoster:
			content = m.renderRoster()
		case tabReports:
			content = m.renderReports()
		}
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statsLine) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, statsLine, content, footer)
}

func (m AdminModel) renderHeader() string {
	var tabs []string
	for i, name := range tabNames {
		if tabState(i) == m.activeTab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("mesai")
	day := highlightStyle.Render(m.day.Format("02.01.2006 Monday"))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(day) - lipgloss.Width(tabRow) - 6
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", day, spacer, tabRow),
	)
}

// renderStatsLine shows the day's aggregate over the unfiltered bucket. The
// status filter only narrows the work list below, never these numbers.
func (m AdminModel) renderStatsLine() string {
	stats := timeline.DayStats(m.bucket)
	parts := []string{
		fmt.Sprintf("Toplam: %s", titleStyle.Render(fmt.Sprintf("%d", stats.Total))),
		fmt.Sprintf("Tamamlanan: %s", successStyle.Render(fmt.Sprintf("%d", stats.Completed))),
		fmt.Sprintf("Devam Eden: %s", warningStyle.Render(fmt.Sprintf("%d", stats.Active))),
		fmt.Sprintf("Ort. Süre: %s", highlightStyle.Render(stats.AvgDuration)),
	}
	return headerStyle.Render(mutedStyle.Render(strings.Join(parts, "   ")))
}

func (m AdminModel) renderFooter() string {
	helpView := m.help.View(keys)

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render(" " + m.status)
		} else {
			status = mutedStyle.Render(" " + m.status)
		}
	}

	left := footerStyle.Render(helpView)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func barStyle(w model.Work) lipgloss.Style {
	if w.EndTime == nil {
		return barActiveStyle
	}
	if w.Type == model.WorkVideo {
		return barVideoStyle
	}
	return barSoftwareStyle
}

// renderHourCell paints one employee × hour cell. Bar percentages map onto
// cell columns; overlapping bars simply overwrite.
func renderHourCell(bucket []model.Work, employeeID string, hour int, now time.Time) string {
	cells := make([]string, timelineCellWidth)
	for i := range cells {
		cells[i] = barEmptyStyle.Render("·")
	}
	for _, b := range timeline.Bars(bucket, employeeID, hour, now) {
		from := int(b.Left / 100 * timelineCellWidth)
		to := int((b.Left + b.Width) / 100 * timelineCellWidth)
		if to <= from {
			to = from + 1
		}
		style := barStyle(b.Work)
		for i := from; i < to && i < timelineCellWidth; i++ {
			cells[i] = style.Render("█")
		}
	}
	return strings.Join(cells, "")
}

func (m AdminModel) renderTimeline() string {
	w := m.width - 4
	now := time.Now()

	if len(m.employees) == 0 {
		return panelStyle.Width(w).Render(mutedStyle.Render("Personel yok. Personel sekmesinden n ile ekleyin."))
	}

	var rows []string

	// Hour ruler
	var ruler strings.Builder
	ruler.WriteString(fmt.Sprintf("%-14s", ""))
	for _, h := range timeline.Hours() {
		ruler.WriteString(fmt.Sprintf("%-*s", timelineCellWidth+1, fmt.Sprintf("%02d", h)))
	}
	rows = append(rows, mutedStyle.Render(ruler.String()))

	for i, e := range m.employees {
		name := e.Name
		if r := []rune(name); len(r) > 12 {
			name = string(r[:12])
		}
		style := normalItemStyle
		prefix := "  "
		if i == m.workCursor {
			style = selectedItemStyle
			prefix = "> "
		}

		var line strings.Builder
		line.WriteString(style.Render(fmt.Sprintf("%s%-12s", prefix, name)))
		for _, h := range timeline.Hours() {
			line.WriteString(renderHourCell(m.bucket, e.ID, h, now))
			line.WriteString(" ")
		}
		rows = append(rows, line.String())
	}

	// Tooltip lines for the selected employee's works
	if m.workCursor < len(m.employees) {
		selected := m.employees[m.workCursor]
		rows = append(rows, "")
		for _, work := range m.bucket {
			if work.EmployeeID != selected.ID {
				continue
			}
			rows = append(rows, "  "+mutedStyle.Render(timeline.BarTooltip(work)))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m AdminModel) renderWorkList() string {
	w := m.width - 4
	works := m.filteredBucket()

	filterLabel := accentStyle.Render("Filtre: " + m.filter.String())
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-16s %-8s %-7s %-7s %-9s %-12s", "Personel", "Tür", "Başl.", "Bitiş", "Süre", "Durum"))

	rows := []string{filterLabel, "", headerRow}

	if len(works) == 0 {
		rows = append(rows, mutedStyle.Render("  Bu günde kayıt yok"))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	for i, work := range works {
		endStr := "-"
		if work.EndTime != nil {
			endStr = work.EndTime.Format("15:04")
		}
		durStr := work.Duration
		if durStr == "" {
			durStr = "-"
		}
		statusLabel := timeline.StatusLabel(work.Status())
		statusStyled := successStyle.Render(statusLabel)
		if work.Status() == model.StatusInProgress {
			statusStyled = warningStyle.Render(statusLabel)
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.workCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-16s %-8s %-7s %-7s %-9s",
			cursor, work.EmployeeName, timeline.TypeLabel(work.Type),
			work.StartTime.Format("15:04"), endStr, durStr))+" "+statusStyled)
	}

	rows = append(rows, "", mutedStyle.Render("  f: filtre  e: dışa aktar"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m AdminModel) renderRoster() string {
	w := m.width - 4

	if len(m.employees) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Personel"),
			"",
			mutedStyle.Render("Henüz personel yok. n ile ekleyin."),
		))
	}

	rows := []string{titleStyle.Render("Personel"), ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-18s %-14s %-14s %8s", "Ad", "Ort. Video", "Ort. Yazılım", "Toplam")))

	for i, e := range m.employees {
		stats := m.stats[e.ID]
		avgVideo := stats.AverageVideoDuration
		if avgVideo == "" {
			avgVideo = "-"
		}
		avgSoftware := stats.AverageSoftwareDuration
		if avgSoftware == "" {
			avgSoftware = "-"
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.rosterCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-18s %-14s %-14s %8d",
			cursor, e.Name, avgVideo, avgSoftware, stats.TotalWorks)))
	}

	rows = append(rows, "", mutedStyle.Render("  n: yeni  d: sil"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderReports draws completed minutes per day for the week ending at the
// selected day.
func (m AdminModel) renderReports() string {
	w := m.width - 4

	chartWidth := w - 4
	if chartWidth < 20 {
		chartWidth = 20
	}
	chart := barchart.New(chartWidth, 12)

	var bars []barchart.BarData
	for i := 6; i >= 0; i-- {
		day := m.day.AddDate(0, 0, -i)
		minutes := completedMinutes(timeline.DayBucket(m.works, day))
		style := barVideoStyle
		if minutes == 0 {
			style = barEmptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: day.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: day.Format("2006-01-02"), Value: float64(minutes), Style: style},
			},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	title := titleStyle.Render("Son 7 Gün · Tamamlanan Dakika")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", chart.View()))
}

// completedMinutes sums the parseable durations of a bucket's completed works.
func completedMinutes(bucket []model.Work) int {
	total := 0
	for _, w := range bucket {
		if w.EndTime == nil {
			continue
		}
		if mins, ok := timeline.ParseMinutes(w.Duration); ok {
			total += mins
		}
	}
	return total
}

func (m AdminModel) renderExportPicker() string {
	rows := []string{titleStyle.Render("Dışa Aktarma Biçimi"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == m.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: aktar  esc: vazgeç"))

	return activePanelStyle.Width(m.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
