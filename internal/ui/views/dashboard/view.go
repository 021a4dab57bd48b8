package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timesdto "iftar/internal/modules/prayertimes/dto"
	qurandto "iftar/internal/modules/quran/dto"
	trackerdto "iftar/internal/modules/tracker/dto"
	"iftar/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type TimesPort interface {
	Today(ctx context.Context) (timesdto.TimesOutput, error)
	CountdownTo(ctx context.Context, target string) (timesdto.CountdownOutput, error)
	NextPrayer(ctx context.Context, times timesdto.TimesOutput) (timesdto.NextPrayerOutput, error)
}

type SummaryPort interface {
	DaySummary(ctx context.Context, date string) (trackerdto.SummaryOutput, error)
}

type ProgressPort interface {
	Progress(ctx context.Context) (qurandto.ProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type TimesLoadedMsg struct {
	Times timesdto.TimesOutput
	Next  timesdto.NextPrayerOutput
	Err   error
}

type summaryLoadedMsg struct {
	summary trackerdto.SummaryOutput
	err     error
}

type progressLoadedMsg struct {
	progress qurandto.ProgressOutput
	err      error
}

type tickMsg time.Time

type countdownMsg struct {
	out timesdto.CountdownOutput
	err error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the home screen: the live iftar countdown, today's
// timetable summary, and progress across habits and reading.
type Model struct {
	times    TimesPort
	summary  SummaryPort
	progress ProgressPort

	timetable timesdto.TimesOutput
	next      timesdto.NextPrayerOutput
	countdown timesdto.CountdownOutput
	daySum    trackerdto.SummaryOutput
	reading   qurandto.ProgressOutput

	spinner  spinner.Model
	loading  bool
	loadErr  error
	haveTime bool
	width    int
	height   int
}

func New(times TimesPort, summary SummaryPort, progress ProgressPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		times:    times,
		summary:  summary,
		progress: progress,
		spinner:  sp,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTimesCmd(),
		m.loadSummaryCmd(),
		m.loadProgressCmd(),
		m.spinner.Tick,
		tickCmd(),
	)
}

// Refresh reloads the pieces of the dashboard that other tabs mutate.
func (m Model) Refresh() tea.Cmd {
	return tea.Batch(m.loadSummaryCmd(), m.loadProgressCmd())
}

// ReloadTimes refetches the timetable, for use after a location or
// school change.
func (m Model) ReloadTimes() tea.Cmd {
	return tea.Batch(m.loadTimesCmd(), m.Refresh())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TimesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.loadErr = msg.Err
			return m, nil
		}
		m.loadErr = nil
		m.haveTime = true
		m.timetable = msg.Times
		m.next = msg.Next
		cmds = append(cmds, m.countdownCmd())

	case summaryLoadedMsg:
		if msg.err == nil {
			m.daySum = msg.summary
		}

	case progressLoadedMsg:
		if msg.err == nil {
			m.reading = msg.progress
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		if m.haveTime {
			cmds = append(cmds, m.countdownCmd())
		}

	case countdownMsg:
		if msg.err == nil {
			m.countdown = msg.out
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading prayer times…")
	}
	if m.loadErr != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("prayer times unavailable: "+m.loadErr.Error()))
	}

	top := m.renderCountdown()
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTodayPane(),
		m.renderProgressPane(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// ─── rendering ───────────────────────────────────────────────────────────────

func (m Model) renderCountdown() string {
	var sb strings.Builder

	place := m.timetable.City
	if m.timetable.Country != "" {
		place += ", " + m.timetable.Country
	}
	sb.WriteString(theme.Muted.Render(place) + "\n")
	if m.timetable.HijriMonthName != "" {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d %s %d AH",
			m.timetable.HijriDay, m.timetable.HijriMonthName, m.timetable.HijriYear)) + "\n")
	}
	sb.WriteString("\n")

	if m.countdown.Done {
		sb.WriteString(theme.Good.Render("It is time to break the fast.") + "\n")
		sb.WriteString(theme.Title.Render("Maghrib "+m.timetable.Maghrib) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("Time until iftar") + "\n")
		big := fmt.Sprintf("%s : %s : %s",
			m.countdown.Hours, m.countdown.Minutes, m.countdown.Seconds)
		sb.WriteString(theme.Hot.Render(big) + "\n")
		sb.WriteString(theme.Muted.Render("Maghrib at "+m.timetable.Maghrib) + "\n")
	}

	if m.next.Name != "" {
		when := m.next.Time
		if m.next.Tomorrow {
			when += " tomorrow"
		}
		sb.WriteString("\n" + theme.Muted.Render("next prayer: ") +
			theme.Title.Render(m.next.Name) + theme.Muted.Render(" at "+when))
	}

	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return theme.Pane.Width(w).Align(lipgloss.Center).Render(sb.String())
}

func (m Model) renderTodayPane() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %d/%d\n",
		theme.Muted.Render("prayers"), m.daySum.PrayersDone, m.daySum.PrayersTotal))
	sb.WriteString(fmt.Sprintf("%s  %d/%d\n",
		theme.Muted.Render("habits"), m.daySum.HabitsDone, m.daySum.HabitsTotal))
	sb.WriteString("\n")
	sb.WriteString(theme.Muted.Render("Fajr    ") + m.timetable.Fajr + "\n")
	sb.WriteString(theme.Muted.Render("Dhuhr   ") + m.timetable.Dhuhr + "\n")
	sb.WriteString(theme.Muted.Render("Asr     ") + m.timetable.Asr + "\n")
	sb.WriteString(theme.Muted.Render("Maghrib ") + m.timetable.Maghrib + "\n")
	sb.WriteString(theme.Muted.Render("Isha    ") + m.timetable.Isha + "\n")

	w := m.width/2 - 3
	if w < 18 {
		w = 18
	}
	return theme.Pane.Width(w).Render(sb.String())
}

func (m Model) renderProgressPane() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Quran") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %d of %d pages\n",
		theme.Muted.Render("read"), m.reading.CompletedPages, m.reading.TotalPages))
	sb.WriteString(renderBar(m.reading.Percent, 20) + fmt.Sprintf(" %d%%\n", m.reading.Percent))
	if m.reading.LastSurah > 0 {
		sb.WriteString(fmt.Sprintf("%s surah %d, ayah %d\n",
			theme.Muted.Render("last"), m.reading.LastSurah, m.reading.LastAyah))
	}

	w := m.width/2 - 3
	if w < 18 {
		w = 18
	}
	return theme.Pane.Width(w).Render(sb.String())
}

func renderBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return theme.Good.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", width-filled))
}

// ─── commands ────────────────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadTimesCmd() tea.Cmd {
	return func() tea.Msg {
		times, err := m.times.Today(context.Background())
		if err != nil {
			return TimesLoadedMsg{Err: err}
		}
		next, err := m.times.NextPrayer(context.Background(), times)
		if err != nil {
			return TimesLoadedMsg{Times: times, Err: err}
		}
		return TimesLoadedMsg{Times: times, Next: next}
	}
}

func (m Model) countdownCmd() tea.Cmd {
	target := m.timetable.Maghrib
	return func() tea.Msg {
		out, err := m.times.CountdownTo(context.Background(), target)
		return countdownMsg{out: out, err: err}
	}
}

func (m Model) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		// Empty date resolves to today inside the tracker.
		summary, err := m.summary.DaySummary(context.Background(), "")
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func (m Model) loadProgressCmd() tea.Cmd {
	return func() tea.Msg {
		progress, err := m.progress.Progress(context.Background())
		return progressLoadedMsg{progress: progress, err: err}
	}
}
