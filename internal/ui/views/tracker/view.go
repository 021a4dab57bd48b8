package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "iftar/internal/modules/tracker/dto"
	"iftar/internal/platform/dates"
	"iftar/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TrackerPort interface {
	State(ctx context.Context) (trackerdto.StateOutput, error)
	AddHabit(ctx context.Context, input trackerdto.AddHabitInput) (trackerdto.HabitOutput, error)
	ToggleHabit(ctx context.Context, input trackerdto.ToggleHabitInput) (trackerdto.HabitOutput, error)
	HabitStreak(ctx context.Context, habitID string) (trackerdto.StreakOutput, error)
	DayState(ctx context.Context, date string) (trackerdto.DayOutput, error)
	TogglePrayer(ctx context.Context, input trackerdto.TogglePrayerInput) (trackerdto.DayOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type stateLoadedMsg struct {
	state trackerdto.StateOutput
	err   error
}

type streakLoadedMsg struct {
	streak trackerdto.StreakOutput
	err    error
}

type dayLoadedMsg struct {
	day trackerdto.DayOutput
	err error
}

// HabitToggledMsg bubbles to the app so the dashboard can refresh.
type HabitToggledMsg struct {
	Habit trackerdto.HabitOutput
	Err   error
}

// HabitAddedMsg bubbles to the app after an add, from the inline input
// or a palette habit:add.
type HabitAddedMsg struct {
	Habit trackerdto.HabitOutput
	Err   error
}

// PrayerToggledMsg bubbles to the app so the dashboard and the prayers
// tab can refresh.
type PrayerToggledMsg struct {
	Day trackerdto.DayOutput
	Err error
}

// prayerKeys maps number keys to the toggleable prayers.
var prayerKeys = map[string]string{
	"1": "Fajr",
	"2": "Dhuhr",
	"3": "Asr",
	"4": "Maghrib",
	"5": "Isha",
}

var prayerOrder = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// ─── list item ───────────────────────────────────────────────────────────────

type habitItem struct {
	habit trackerdto.HabitOutput
	done  bool
}

func (i habitItem) Title() string {
	check := "☐"
	if i.done {
		check = "✓"
	}
	return fmt.Sprintf("%s %s %s", check, i.habit.Icon, i.habit.Name)
}

func (i habitItem) Description() string {
	if i.habit.Description != "" {
		return i.habit.Description
	}
	return fmt.Sprintf("%d days completed", len(i.habit.CompletedDays))
}

func (i habitItem) FilterValue() string { return i.habit.Name }

// ─── model ───────────────────────────────────────────────────────────────────

// stripDays is the length of the browsable date strip, ending today.
const stripDays = 7

// Model is the habit tab: a 7-day date strip, the habit and prayer
// checklists scoped to the selected day, and the selected habit's
// streaks beside them.
type Model struct {
	port TrackerPort

	days   [stripDays]string
	dayIdx int
	day    trackerdto.DayOutput

	state  trackerdto.StateOutput
	habits list.Model
	streak trackerdto.StreakOutput

	input  textinput.Model
	adding bool

	spinner spinner.Model
	loading bool
	status  string
	width   int
	height  int
}

func New(port TrackerPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Habits"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "habit name"
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, habits: l, input: ti, spinner: sp, loading: true}
	now := time.Now()
	for i := 0; i < stripDays; i++ {
		m.days[i] = dates.Key(now.AddDate(0, 0, i-(stripDays-1)))
	}
	m.dayIdx = stripDays - 1
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStateCmd(), m.loadDayCmd(), m.spinner.Tick)
}

// SelectedDate is the date key the strip currently points at.
func (m Model) SelectedDate() string {
	return m.days[m.dayIdx]
}

// Filtering reports whether the view is consuming raw key input, via
// the list filter or the add-habit prompt; global bindings must yield.
func (m Model) Filtering() bool {
	return m.adding || m.habits.FilterState() == list.Filtering
}

// Refresh reloads the habit list and day state after external mutations.
func (m Model) Refresh() tea.Cmd {
	return tea.Batch(m.loadStateCmd(), m.loadDayCmd())
}

// AddHabit creates a habit; used by the command palette.
func (m Model) AddHabit(name string) tea.Cmd {
	return func() tea.Msg {
		habit, err := m.port.AddHabit(context.Background(), trackerdto.AddHabitInput{Name: name})
		return HabitAddedMsg{Habit: habit, Err: err}
	}
}

// ToggleHabitByID toggles an arbitrary habit; used by the palette.
func (m Model) ToggleHabitByID(id, date string) tea.Cmd {
	return func() tea.Msg {
		habit, err := m.port.ToggleHabit(context.Background(), trackerdto.ToggleHabitInput{
			HabitID: id,
			Date:    date,
		})
		return HabitToggledMsg{Habit: habit, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.habits.SetSize(m.width*5/10, m.height-2)

	case stateLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.habits.Title = "Habits — " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		cmds = append(cmds, m.setHabitItems())
		if item, ok := m.habits.SelectedItem().(habitItem); ok {
			cmds = append(cmds, m.loadStreakCmd(item.habit.ID))
		}

	case dayLoadedMsg:
		if msg.err == nil {
			m.day = msg.day
		}

	case streakLoadedMsg:
		if msg.err == nil {
			m.streak = msg.streak
		}

	case HabitToggledMsg:
		if msg.Err != nil {
			m.status = "toggle failed: " + msg.Err.Error()
		} else {
			m.status = ""
			cmds = append(cmds, m.loadStateCmd())
		}

	case HabitAddedMsg:
		if msg.Err != nil {
			m.status = "add failed: " + msg.Err.Error()
		} else {
			m.status = "added " + msg.Habit.Name
			cmds = append(cmds, m.loadStateCmd())
		}

	case PrayerToggledMsg:
		if msg.Err != nil {
			m.status = "toggle failed: " + msg.Err.Error()
		} else if msg.Day.Date == m.SelectedDate() {
			m.day = msg.Day
			m.status = ""
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		if !m.Filtering() {
			if cmd, handled := m.handleKey(msg); handled {
				cmds = append(cmds, cmd)
				return m, tea.Batch(cmds...)
			}
		}
	}

	if !m.loading {
		prevIdx := m.habits.Index()
		var cmd tea.Cmd
		m.habits, cmd = m.habits.Update(msg)
		cmds = append(cmds, cmd)
		if m.habits.Index() != prevIdx {
			if item, ok := m.habits.SelectedItem().(habitItem); ok {
				cmds = append(cmds, m.loadStreakCmd(item.habit.ID))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey handles the day strip, the checklists, and the add prompt.
// Handled keys are not forwarded to the list, which would otherwise
// consume left/right for pagination.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if prayer, ok := prayerKeys[key]; ok {
		return m.togglePrayerCmd(prayer), true
	}
	switch key {
	case "left":
		if m.dayIdx > 0 {
			m.dayIdx--
			return tea.Batch(m.setHabitItems(), m.loadDayCmd()), true
		}
		return nil, true
	case "right":
		if m.dayIdx < stripDays-1 {
			m.dayIdx++
			return tea.Batch(m.setHabitItems(), m.loadDayCmd()), true
		}
		return nil, true
	case "a":
		m.adding = true
		m.input.SetValue("")
		return m.input.Focus(), true
	case " ", "enter":
		if item, ok := m.habits.SelectedItem().(habitItem); ok {
			return m.toggleHabitCmd(item.habit.ID), true
		}
		return nil, true
	}
	return nil, false
}

// updateAdding routes keys to the add-habit prompt while it is open.
func (m Model) updateAdding(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if name == "" {
			return m, nil
		}
		return m, m.AddHabit(name)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading habits…")
	}

	strip := m.renderDayStrip()

	listW := m.width * 5 / 10
	detailW := m.width - listW
	bodyH := m.height - lipgloss.Height(strip)

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(bodyH).
		Render(m.habits.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(bodyH - 2).
		Padding(1).
		Render(m.renderDetail())

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	return lipgloss.JoinVertical(lipgloss.Left, strip, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderDayStrip() string {
	parts := make([]string, stripDays)
	for i, key := range m.days {
		label := key[5:] // MM-DD
		if t, err := time.Parse(dates.KeyLayout, key); err == nil {
			label = t.Format("Mon 2")
		}
		switch {
		case i == m.dayIdx:
			parts[i] = theme.Hot.Render(" " + label + " ")
		case i == stripDays-1:
			parts[i] = theme.Title.Render(" " + label + " ")
		default:
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render("│")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(strings.Join(parts, sep)) + "\n"
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.SelectedDate()) + "\n\n")

	for i, name := range prayerOrder {
		check := "☐"
		style := theme.Muted
		if m.day.Completed[name] {
			check = "✓"
			style = theme.Good
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s %-8s", check, name)) +
			theme.Muted.Render(fmt.Sprintf("[%d]", i+1)) + "\n")
	}
	sb.WriteString("\n")

	if m.adding {
		sb.WriteString(theme.Title.Render("New habit") + "\n")
		sb.WriteString(m.input.View() + "\n")
		sb.WriteString(theme.Muted.Render("enter: add  esc: cancel") + "\n")
		return sb.String()
	}

	if m.streak.HabitID != "" {
		sb.WriteString(theme.Title.Render(m.streak.Name) + "\n")
		sb.WriteString(theme.Muted.Render("current streak ") + fmt.Sprintf("%d days\n", m.streak.Current))
		sb.WriteString(theme.Muted.Render("best streak    ") + fmt.Sprintf("%d days\n", m.streak.Best))
		sb.WriteString(theme.Muted.Render("total days     ") + fmt.Sprintf("%d\n", m.streak.Total))
		sb.WriteString("\n")
	}

	sb.WriteString(theme.Muted.Render("←/→: day  space: toggle habit  1-5: prayer  a: add"))
	if m.status != "" {
		sb.WriteString("\n\n" + theme.Muted.Render(m.status))
	}
	return sb.String()
}

// setHabitItems rebuilds the list items with checkmarks scoped to the
// selected day, preserving the cursor.
func (m *Model) setHabitItems() tea.Cmd {
	date := m.SelectedDate()
	items := make([]list.Item, len(m.state.Habits))
	for i, h := range m.state.Habits {
		items[i] = habitItem{habit: h, done: habitDoneOn(h, date)}
	}
	prev := m.habits.Index()
	cmd := m.habits.SetItems(items)
	if prev < len(items) {
		m.habits.Select(prev)
	}
	return cmd
}

func habitDoneOn(h trackerdto.HabitOutput, date string) bool {
	for _, d := range h.CompletedDays {
		if d == date {
			return true
		}
	}
	return false
}

func (m Model) loadStateCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.port.State(context.Background())
		return stateLoadedMsg{state: state, err: err}
	}
}

func (m Model) loadDayCmd() tea.Cmd {
	date := m.SelectedDate()
	return func() tea.Msg {
		day, err := m.port.DayState(context.Background(), date)
		return dayLoadedMsg{day: day, err: err}
	}
}

func (m Model) loadStreakCmd(habitID string) tea.Cmd {
	return func() tea.Msg {
		streak, err := m.port.HabitStreak(context.Background(), habitID)
		return streakLoadedMsg{streak: streak, err: err}
	}
}

func (m Model) toggleHabitCmd(habitID string) tea.Cmd {
	date := m.SelectedDate()
	return func() tea.Msg {
		habit, err := m.port.ToggleHabit(context.Background(), trackerdto.ToggleHabitInput{
			HabitID: habitID,
			Date:    date,
		})
		return HabitToggledMsg{Habit: habit, Err: err}
	}
}

func (m Model) togglePrayerCmd(prayer string) tea.Cmd {
	date := m.SelectedDate()
	return func() tea.Msg {
		day, err := m.port.TogglePrayer(context.Background(), trackerdto.TogglePrayerInput{
			Date:   date,
			Prayer: prayer,
		})
		return PrayerToggledMsg{Day: day, Err: err}
	}
}
