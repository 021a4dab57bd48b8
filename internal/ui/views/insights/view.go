package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightsdto "iftar/internal/modules/insights/dto"
	"iftar/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type InsightsPort interface {
	ForToday(ctx context.Context) (insightsdto.InsightOutput, error)
	ForDay(ctx context.Context, day int) (insightsdto.InsightOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type insightLoadedMsg struct {
	insight insightsdto.InsightOutput
	err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows one day's devotional content: verse, hadith, and a
// moment of history. Left/right browse adjacent days.
type Model struct {
	port InsightsPort

	insight insightsdto.InsightOutput
	body    viewport.Model
	spinner spinner.Model
	loading bool
	loadErr error
	width   int
	height  int
}

func New(port InsightsPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, body: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTodayCmd(), m.spinner.Tick)
}

// ShowDay jumps to a specific day; used by the command palette.
func (m Model) ShowDay(day int) tea.Cmd {
	return m.loadDayCmd(day)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 6
		m.body.Height = m.height - 4

	case insightLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		m.loadErr = nil
		m.insight = msg.insight
		m.body.SetContent(m.renderInsight())
		m.body.GotoTop()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.insight.Day > 1 {
				cmds = append(cmds, m.loadDayCmd(m.insight.Day-1))
			}
		case "right", "l":
			if m.insight.Day < 30 {
				cmds = append(cmds, m.loadDayCmd(m.insight.Day+1))
			}
		}
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading insight…")
	}
	if m.loadErr != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("insight unavailable: "+m.loadErr.Error()))
	}

	w := m.width - 4
	if w < 30 {
		w = 30
	}
	return theme.Pane.Width(w).Render(m.body.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderInsight() string {
	in := m.insight
	var sb strings.Builder

	sb.WriteString(theme.Title.Render(fmt.Sprintf("Day %d", in.Day)) + "  " +
		theme.Muted.Render("←/→ browse days") + "\n\n")

	sb.WriteString(theme.Hot.Render("Verse · "+in.VerseReference) + "\n")
	if in.VerseArabic != "" {
		sb.WriteString(in.VerseArabic + "\n")
	}
	sb.WriteString(in.VerseTranslation + "\n\n")

	sb.WriteString(theme.Hot.Render("Hadith") + "\n")
	sb.WriteString(in.HadithText + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("narrated by %s (%s)", in.HadithNarrator, in.HadithSource)) + "\n\n")

	sb.WriteString(theme.Hot.Render(in.HistoricalTitle) + "\n")
	sb.WriteString(in.HistoricalText + "\n")

	return sb.String()
}

func (m Model) loadTodayCmd() tea.Cmd {
	return func() tea.Msg {
		insight, err := m.port.ForToday(context.Background())
		return insightLoadedMsg{insight: insight, err: err}
	}
}

func (m Model) loadDayCmd(day int) tea.Cmd {
	return func() tea.Msg {
		insight, err := m.port.ForDay(context.Background(), day)
		return insightLoadedMsg{insight: insight, err: err}
	}
}
