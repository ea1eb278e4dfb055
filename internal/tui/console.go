package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mesai/internal/api"
	"github.com/sadopc/mesai/internal/model"
	"github.com/sadopc/mesai/internal/timeline"
)

// ConsoleModel is the employee-facing view: start a session, watch today's
// list, complete the selected session.
type ConsoleModel struct {
	client *api.Client
	width  int
	height int

	cursor   int
	showHelp bool

	seq         uint64
	lastApplied uint64

	works     []model.Work
	today     []model.Work
	employees []model.Employee

	formActive     bool
	form           *huh.Form
	formType       string // "start", "complete", "complete_confirm"
	formEmployeeID *string
	formWorkType   *string
	formFirstVideo *bool
	formVideoLink  *string
	formConfirm    *bool

	completingID   string
	completingKind model.WorkType

	help      help.Model
	status    string
	statusErr bool
}

func NewConsole(client *api.Client) ConsoleModel {
	h := help.New()
	h.ShowAll = false

	employeeID, workType, link := "", string(model.WorkSoftware), ""
	firstVideo, confirm := false, false
	return ConsoleModel{
		client:         client,
		seq:            1,
		formEmployeeID: &employeeID,
		formWorkType:   &workType,
		formFirstVideo: &firstVideo,
		formVideoLink:  &link,
		formConfirm:    &confirm,
		help:           h,
	}
}

func (m ConsoleModel) Init() tea.Cmd {
	client := m.client
	seq := m.seq
	return tea.Batch(
		func() tea.Msg { return fetchConsoleSnapshot(client, seq, "") },
		consoleTickCmd(),
	)
}

func consoleTickCmd() tea.Cmd {
	return tea.Tick(consolePollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *ConsoleModel) nextFetch() tea.Cmd {
	m.seq++
	seq := m.seq
	client := m.client
	return func() tea.Msg {
		return fetchConsoleSnapshot(client, seq, "")
	}
}

func fetchConsoleSnapshot(client *api.Client, seq uint64, notice string) tea.Msg {
	ctx := context.Background()

	employees, err := client.Employees(ctx)
	if err != nil {
		return statusMsg{text: "Personel listesi alınamadı: " + err.Error(), isError: true}
	}
	works, err := client.Works(ctx)
	if err != nil {
		return statusMsg{text: "İş listesi alınamadı: " + err.Error(), isError: true}
	}

	return consoleDataMsg{seq: seq, works: works, employees: employees, notice: notice}
}

func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		cmd := m.nextFetch()
		return m, tea.Batch(cmd, consoleTickCmd())

	case consoleDataMsg:
		return m.applySnapshot(msg), nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isError
		return m, nil

	case tea.KeyMsg:
		if m.formActive && m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}

	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m ConsoleModel) applySnapshot(msg consoleDataMsg) ConsoleModel {
	if msg.seq <= m.lastApplied {
		return m
	}
	m.lastApplied = msg.seq
	m.works = msg.works
	m.employees = msg.employees
	m.today = timeline.DayBucket(m.works, time.Now())
	m.cursor = clampCursor(m.cursor, len(m.today))
	if msg.notice != "" {
		m.status = msg.notice
		m.statusErr = false
	}
	return m
}

func (m ConsoleModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, keys.Refresh):
		cmd := m.nextFetch()
		return m, cmd

	case key.Matches(msg, keys.Start):
		return m.showStartForm()

	case key.Matches(msg, keys.Enter):
		if m.cursor < len(m.today) {
			work := m.today[m.cursor]
			if work.EndTime != nil {
				m.status = "Bu iş zaten tamamlandı"
				m.statusErr = true
				return m, nil
			}
			return m.showCompleteForm(work)
		}

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.today)-1 {
			m.cursor++
		}
	}
	return m, nil
}

// --- Forms ---

func (m ConsoleModel) showStartForm() (tea.Model, tea.Cmd) {
	if len(m.employees) == 0 {
		m.status = "Personel listesi boş"
		m.statusErr = true
		return m, nil
	}

	*m.formEmployeeID = m.employees[0].ID
	*m.formWorkType = string(model.WorkSoftware)
	*m.formFirstVideo = false
	m.formType = "start"

	employeeOptions := make([]huh.Option[string], len(m.employees))
	for i, e := range m.employees {
		employeeOptions[i] = huh.NewOption(e.Name, e.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Personel").Options(employeeOptions...).Value(m.formEmployeeID),
			huh.NewSelect[string]().Title("İş Türü").Options(
				huh.NewOption("Yazılım", string(model.WorkSoftware)),
				huh.NewOption("Video", string(model.WorkVideo)),
			).Value(m.formWorkType),
			huh.NewConfirm().
				Title("Günün ilk videosu mu?").
				Affirmative("Evet").
				Negative("Hayır").
				Value(m.formFirstVideo),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

// showCompleteForm opens the completion flow: video work asks for the link,
// software work asks for a plain confirm. Nothing is sent until the form is
// submitted.
func (m ConsoleModel) showCompleteForm(work model.Work) (tea.Model, tea.Cmd) {
	m.completingID = work.ID
	m.completingKind = work.Type
	*m.formVideoLink = ""

	if work.Type == model.WorkVideo {
		m.formType = "complete"
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Video Linki").Value(m.formVideoLink),
			),
		).WithShowHelp(true).WithShowErrors(true)
	} else {
		*m.formConfirm = false
		m.formType = "complete_confirm"
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("İş tamamlansın mı?").
					Affirmative("Tamamla").
					Negative("Vazgeç").
					Value(m.formConfirm),
			),
		).WithShowHelp(true).WithShowErrors(true)
	}
	m.formActive = true
	return m, m.form.Init()
}

func (m ConsoleModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "start":
			return m.submitStart()
		case "complete":
			return m.submitComplete()
		case "complete_confirm":
			return m.submitCompleteConfirmed()
		}
	}
	return m, cmd
}

// submitStart issues the start request from the form values.
func (m ConsoleModel) submitStart() (ConsoleModel, tea.Cmd) {
	employeeID := *m.formEmployeeID
	workType := model.WorkType(*m.formWorkType)
	isFirst := *m.formFirstVideo && workType == model.WorkVideo

	var employeeName string
	for _, e := range m.employees {
		if e.ID == employeeID {
			employeeName = e.Name
			break
		}
	}
	if employeeName == "" {
		m.status = "Personel seçilmedi"
		m.statusErr = true
		return m, nil
	}

	m.seq++
	seq := m.seq
	client := m.client
	return m, func() tea.Msg {
		ctx := context.Background()
		_, err := client.StartWork(ctx, api.StartWorkRequest{
			EmployeeID:   employeeID,
			EmployeeName: employeeName,
			Type:         workType,
			StartTime:    time.Now(),
			IsFirstVideo: isFirst,
		})
		if err != nil {
			return statusMsg{text: "İş başlatılamadı: " + err.Error(), isError: true}
		}
		return fetchConsoleSnapshot(client, seq, "İş başlatıldı")
	}
}

// submitCompleteConfirmed issues the completion only when the confirm was
// accepted. Declining sends nothing.
func (m ConsoleModel) submitCompleteConfirmed() (ConsoleModel, tea.Cmd) {
	if !*m.formConfirm {
		return m, nil
	}
	return m.submitComplete()
}

// submitComplete validates the video link locally: a video work without a
// link never reaches the network.
func (m ConsoleModel) submitComplete() (ConsoleModel, tea.Cmd) {
	link := strings.TrimSpace(*m.formVideoLink)
	if m.completingKind == model.WorkVideo && link == "" {
		m.status = "Video linki boş olamaz"
		m.statusErr = true
		return m, nil
	}

	id := m.completingID
	m.seq++
	seq := m.seq
	client := m.client
	return m, func() tea.Msg {
		ctx := context.Background()
		if err := client.CompleteWork(ctx, id, time.Now(), link); err != nil {
			return statusMsg{text: "İş tamamlanamadı: " + err.Error(), isError: true}
		}
		return fetchConsoleSnapshot(client, seq, "İş tamamlandı")
	}
}

// --- View ---

func (m ConsoleModel) View() string {
	if m.width == 0 {
		return "Yükleniyor..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	if m.formActive && m.form != nil {
		content = panelStyle.Width(m.width - 4).Render(m.form.View())
	} else {
		content = m.renderTodayList()
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m ConsoleModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("mesai · konsol")
	day := highlightStyle.Render(time.Now().Format("02.01.2006"))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(day) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, day))
}

func (m ConsoleModel) renderFooter() string {
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

func (m ConsoleModel) renderTodayList() string {
	w := m.width - 4

	rows := []string{titleStyle.Render("Bugünün İşleri"), ""}

	if len(m.today) == 0 {
		rows = append(rows, mutedStyle.Render("Bugün kayıt yok. s ile iş başlatın."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-16s %-8s %-7s %-7s %-9s", "Personel", "Tür", "Başl.", "Bitiş", "Süre")))

	for i, work := range m.today {
		endStr := "-"
		durStr := "-"
		statusStyled := warningStyle.Render(timeline.StatusLabel(model.StatusInProgress))
		if work.EndTime != nil {
			endStr = work.EndTime.Format("15:04")
			durStr = work.Duration
			statusStyled = successStyle.Render(timeline.StatusLabel(model.StatusCompleted))
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-16s %-8s %-7s %-7s %-9s",
			cursor, work.EmployeeName, timeline.TypeLabel(work.Type),
			work.StartTime.Format("15:04"), endStr, durStr))+" "+statusStyled)
	}

	rows = append(rows, "", mutedStyle.Render("  s: iş başlat  enter: tamamla  r: yenile"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
