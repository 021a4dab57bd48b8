package quran

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	qurandto "iftar/internal/modules/quran/dto"
	"iftar/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ReaderPort interface {
	ListSurahs(ctx context.Context) ([]qurandto.SurahOutput, error)
	OpenChapter(ctx context.Context, number int) (qurandto.ChapterOutput, error)
	RecordPages(ctx context.Context, pages int) (qurandto.ProgressOutput, error)
	Progress(ctx context.Context) (qurandto.ProgressOutput, error)
	Play(ctx context.Context, index int) (qurandto.PlaybackStatus, error)
	PlayAll(ctx context.Context) (qurandto.PlaybackStatus, error)
	StopPlayback() error
	AwaitClip(ctx context.Context, gen int) error
	ClipEnded(ctx context.Context, gen int, playErr error) (qurandto.PlaybackStatus, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SurahsLoadedMsg struct {
	Surahs []qurandto.SurahOutput
	Err    error
}

type ChapterLoadedMsg struct {
	Chapter qurandto.ChapterOutput
	Err     error
}

// PagesRecordedMsg bubbles to the app so the dashboard can refresh.
type PagesRecordedMsg struct {
	Progress qurandto.ProgressOutput
	Err      error
}

type playbackMsg struct {
	status qurandto.PlaybackStatus
	err    error
}

type clipEndedMsg struct {
	gen int
	err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type surahItem struct {
	surah qurandto.SurahOutput
}

func (i surahItem) Title() string {
	return fmt.Sprintf("%d. %s", i.surah.Number, i.surah.EnglishName)
}

func (i surahItem) Description() string {
	return fmt.Sprintf("%s · %d verses · %s",
		i.surah.EnglishTranslation, i.surah.VerseCount, i.surah.RevelationPlace)
}

func (i surahItem) FilterValue() string {
	return i.surah.EnglishName + " " + i.surah.EnglishTranslation
}

type focusArea int

const (
	focusList focusArea = iota
	focusChapter
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the reader tab: a filterable surah list beside the open
// chapter, with verse-by-verse audio playback.
type Model struct {
	port ReaderPort

	surahs  list.Model
	chapter qurandto.ChapterOutput
	reading viewport.Model
	hasOpen bool

	playback   qurandto.PlaybackStatus
	watchedGen int
	verseIdx   int

	focus   focusArea
	spinner spinner.Model
	loading bool
	status  string
	width   int
	height  int
}

func New(port ReaderPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Surahs"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, surahs: l, reading: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSurahsCmd(), m.spinner.Tick)
}

// Filtering reports whether the surah list's filter is consuming keys.
func (m Model) Filtering() bool {
	return m.surahs.FilterState() == list.Filtering
}

// OpenSurah loads a chapter; used by the command palette.
func (m Model) OpenSurah(number int) tea.Cmd {
	return m.openChapterCmd(number)
}

// RecordPages persists the pages-read count; used by the palette.
func (m Model) RecordPages(pages int) tea.Cmd {
	return func() tea.Msg {
		progress, err := m.port.RecordPages(context.Background(), pages)
		return PagesRecordedMsg{Progress: progress, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SurahsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.surahs.Title = "Surahs — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Surahs))
		for i, s := range msg.Surahs {
			items[i] = surahItem{surah: s}
		}
		cmds = append(cmds, m.surahs.SetItems(items))

	case ChapterLoadedMsg:
		if msg.Err != nil {
			m.status = "open failed: " + msg.Err.Error()
			return m, nil
		}
		m.chapter = msg.Chapter
		m.hasOpen = true
		m.verseIdx = 0
		m.playback = qurandto.PlaybackStatus{}
		m.watchedGen = 0
		m.focus = focusChapter
		m.status = ""
		m.reading.SetContent(m.renderChapter())
		m.reading.GotoTop()

	case playbackMsg:
		if msg.err != nil {
			m.status = "playback: " + msg.err.Error()
		}
		cmds = append(cmds, m.adoptStatus(msg.status)...)

	case clipEndedMsg:
		cmds = append(cmds, m.clipEndedCmd(msg.gen, msg.err))

	case PagesRecordedMsg:
		if msg.Err != nil {
			m.status = "pages: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("recorded %d pages (%d%%)",
				msg.Progress.CompletedPages, msg.Progress.Percent)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.focus == focusList && !m.loading {
		var cmd tea.Cmd
		m.surahs, cmd = m.surahs.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.Filtering() {
		return nil
	}
	switch m.focus {
	case focusList:
		if msg.String() == "enter" {
			if item, ok := m.surahs.SelectedItem().(surahItem); ok {
				return m.openChapterCmd(item.surah.Number)
			}
		}
	case focusChapter:
		switch msg.String() {
		case "esc":
			m.focus = focusList
		case "up", "k":
			if m.verseIdx > 0 {
				m.verseIdx--
				m.reading.SetContent(m.renderChapter())
				m.reading.LineUp(3)
			}
		case "down", "j":
			if m.verseIdx < len(m.chapter.Verses)-1 {
				m.verseIdx++
				m.reading.SetContent(m.renderChapter())
				m.reading.LineDown(3)
			}
		case " ":
			return m.playCmd(m.verseIdx)
		case "a":
			return m.playAllCmd()
		case "s":
			_ = m.port.StopPlayback()
			m.playback = qurandto.PlaybackStatus{}
			m.reading.SetContent(m.renderChapter())
		}
	}
	return nil
}

// adoptStatus applies a playback snapshot and, when a new clip is
// running, spawns the single watcher awaiting its end. The cursor
// follows the playing verse and the viewport scrolls it into view, so
// play-all keeps the current verse on screen.
func (m *Model) adoptStatus(status qurandto.PlaybackStatus) []tea.Cmd {
	m.playback = status
	if status.Playing {
		m.verseIdx = status.Index
	}
	if m.hasOpen {
		m.reading.SetContent(m.renderChapter())
		if status.Playing {
			m.scrollToVerse(status.Index)
		}
	}
	if status.Playing && status.Gen != m.watchedGen {
		m.watchedGen = status.Gen
		return []tea.Cmd{m.awaitCmd(status.Gen)}
	}
	return nil
}

// verseLines is the number of content lines renderChapter emits per
// verse: text, translation, and a blank separator.
const verseLines = 3

// scrollToVerse positions the viewport so the given verse sits roughly
// mid-screen. SetYOffset clamps to the content bounds.
func (m *Model) scrollToVerse(index int) {
	offset := index*verseLines - m.reading.Height/2
	if offset < 0 {
		offset = 0
	}
	m.reading.SetYOffset(offset)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading surahs…")
	}

	listW := m.width * 4 / 10
	chapterW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.surahs.View())

	border := theme.Surface1
	if m.focus == focusChapter {
		border = theme.Lavender
	}
	chapterPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(theme.Mantle).
		Width(chapterW - 2).
		Height(m.height - 2).
		Render(m.chapterContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, chapterPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) chapterContent() string {
	if !m.hasOpen {
		return theme.Muted.Render("enter: open the selected surah")
	}
	header := theme.Title.Render(fmt.Sprintf("%d. %s", m.chapter.Surah.Number, m.chapter.Surah.EnglishName)) +
		"  " + theme.Muted.Render(m.chapter.Surah.Name)
	footer := theme.Muted.Render("space: play verse  a: play all  s: stop  esc: back")
	if m.status != "" {
		footer += "\n" + theme.Muted.Render(m.status)
	}
	return header + "\n\n" + m.reading.View() + "\n" + footer
}

func (m Model) renderChapter() string {
	var sb strings.Builder
	for i, v := range m.chapter.Verses {
		marker := "   "
		if m.playback.Playing && m.playback.Index == i {
			marker = theme.Hot.Render(" ▶ ")
		} else if i == m.verseIdx {
			marker = theme.Title.Render(" › ")
		}
		num := theme.Muted.Render(fmt.Sprintf("%d.", v.NumberInSurah))
		sb.WriteString(marker + num + "  " + v.Text + "\n")
		sb.WriteString("      " + theme.Muted.Render(v.Translation) + "\n\n")
	}
	if m.playback.Sequential {
		sb.WriteString(theme.Hot.Render("playing all — a to stop") + "\n")
	}
	return sb.String()
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.surahs.SetSize(listW, m.height)
	m.reading.Width = m.width - listW - 4
	m.reading.Height = m.height - 7
}

func (m Model) loadSurahsCmd() tea.Cmd {
	return func() tea.Msg {
		surahs, err := m.port.ListSurahs(context.Background())
		return SurahsLoadedMsg{Surahs: surahs, Err: err}
	}
}

func (m Model) openChapterCmd(number int) tea.Cmd {
	return func() tea.Msg {
		chapter, err := m.port.OpenChapter(context.Background(), number)
		return ChapterLoadedMsg{Chapter: chapter, Err: err}
	}
}

func (m Model) playCmd(index int) tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Play(context.Background(), index)
		return playbackMsg{status: status, err: err}
	}
}

func (m Model) playAllCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.PlayAll(context.Background())
		return playbackMsg{status: status, err: err}
	}
}

func (m Model) awaitCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		err := m.port.AwaitClip(context.Background(), gen)
		return clipEndedMsg{gen: gen, err: err}
	}
}

func (m Model) clipEndedCmd(gen int, playErr error) tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.ClipEnded(context.Background(), gen, playErr)
		return playbackMsg{status: status, err: err}
	}
}
