package prayers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timesdto "iftar/internal/modules/prayertimes/dto"
	trackerdto "iftar/internal/modules/tracker/dto"
	"iftar/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SchedulePort interface {
	Today(ctx context.Context) (timesdto.TimesOutput, error)
	Schedule(ctx context.Context, times timesdto.TimesOutput) ([]timesdto.ScheduleEntry, error)
}

type TrackerPort interface {
	DayState(ctx context.Context, date string) (trackerdto.DayOutput, error)
	TogglePrayer(ctx context.Context, input trackerdto.TogglePrayerInput) (trackerdto.DayOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type scheduleLoadedMsg struct {
	times   timesdto.TimesOutput
	entries []timesdto.ScheduleEntry
	err     error
}

type tickMsg time.Time

type dayLoadedMsg struct {
	day trackerdto.DayOutput
	err error
}

// ToggledMsg bubbles to the app so other tabs can refresh summaries.
type ToggledMsg struct {
	Day trackerdto.DayOutput
	Err error
}

// toggleKeys maps number keys to the toggleable prayers, matching the
// schedule order with Sunrise skipped.
var toggleKeys = map[string]string{
	"1": "Fajr",
	"2": "Dhuhr",
	"3": "Asr",
	"4": "Maghrib",
	"5": "Isha",
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows the day's timetable with completion checkmarks. Number
// keys toggle the corresponding prayer for today.
type Model struct {
	schedule SchedulePort
	tracker  TrackerPort

	times   timesdto.TimesOutput
	entries []timesdto.ScheduleEntry
	day     trackerdto.DayOutput
	now     time.Time

	spinner spinner.Model
	loading bool
	loadErr error
	status  string
	width   int
	height  int
}

func New(schedule SchedulePort, tracker TrackerPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{schedule: schedule, tracker: tracker, spinner: sp, loading: true, now: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadScheduleCmd(), m.loadDayCmd(), m.spinner.Tick, tickCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case scheduleLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		m.loadErr = nil
		m.times = msg.times
		m.entries = msg.entries

	case tickMsg:
		m.now = time.Time(msg)
		cmds = append(cmds, tickCmd())

	case dayLoadedMsg:
		if msg.err == nil {
			m.day = msg.day
		}

	case ToggledMsg:
		if msg.Err != nil {
			m.status = "toggle failed: " + msg.Err.Error()
		} else {
			m.day = msg.Day
			m.status = ""
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if prayer, ok := toggleKeys[msg.String()]; ok {
			cmds = append(cmds, m.toggleCmd(prayer))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading timetable…")
	}
	if m.loadErr != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("timetable unavailable: "+m.loadErr.Error()))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Prayer times") + "  " +
		theme.Hot.Render(m.now.Format("15:04:05")) + "\n\n")

	key := 1
	for _, e := range m.entries {
		var marker string
		switch {
		case e.Passive:
			marker = theme.Muted.Render("  ·")
		case m.day.Completed[e.Name]:
			marker = theme.Good.Render("  ✓")
		default:
			marker = "  ☐"
		}

		name := e.Name
		line := marker + "  " + padRight(name, 8) + "  " + e.Time
		if !e.Passive {
			line += theme.Muted.Render("  [" + strconv.Itoa(key) + "]")
			key++
		}
		if e.Next {
			line = theme.Hot.Render(line + "  ← next")
		}
		sb.WriteString(line + "\n")
	}

	if m.times.Imsak != "" {
		sb.WriteString("\n" + theme.Muted.Render("Imsak ") + m.times.Imsak +
			theme.Muted.Render("  •  Iftar ") + m.times.Maghrib)
	}
	sb.WriteString("\n" + theme.Muted.Render("1-5: mark prayer as prayed"))
	if m.status != "" {
		sb.WriteString("\n" + theme.Muted.Render(m.status))
	}

	w := m.width - 4
	if w < 30 {
		w = 30
	}
	return theme.Pane.Width(w).Render(sb.String())
}

// Refresh reloads the day's completion state, for use after external
// mutations.
func (m Model) Refresh() tea.Cmd {
	return m.loadDayCmd()
}

// Reload refetches the timetable and the day state, for use after a
// location or school change.
func (m Model) Reload() tea.Cmd {
	return tea.Batch(m.loadScheduleCmd(), m.loadDayCmd())
}

// ToggleByName toggles a prayer for an arbitrary date; used by the
// command palette. An empty date means today.
func (m Model) ToggleByName(prayer, date string) tea.Cmd {
	return func() tea.Msg {
		day, err := m.tracker.TogglePrayer(context.Background(), trackerdto.TogglePrayerInput{
			Date:   date,
			Prayer: prayer,
		})
		return ToggledMsg{Day: day, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadScheduleCmd() tea.Cmd {
	return func() tea.Msg {
		times, err := m.schedule.Today(context.Background())
		if err != nil {
			return scheduleLoadedMsg{err: err}
		}
		entries, err := m.schedule.Schedule(context.Background(), times)
		return scheduleLoadedMsg{times: times, entries: entries, err: err}
	}
}

func (m Model) loadDayCmd() tea.Cmd {
	return func() tea.Msg {
		// Empty date resolves to today inside the tracker.
		day, err := m.tracker.DayState(context.Background(), "")
		return dayLoadedMsg{day: day, err: err}
	}
}

func (m Model) toggleCmd(prayer string) tea.Cmd {
	return func() tea.Msg {
		day, err := m.tracker.TogglePrayer(context.Background(), trackerdto.TogglePrayerInput{Prayer: prayer})
		return ToggledMsg{Day: day, Err: err}
	}
}
