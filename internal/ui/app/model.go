package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timesdto "iftar/internal/modules/prayertimes/dto"
	trackerdto "iftar/internal/modules/tracker/dto"
	"iftar/internal/ui/components"
	"iftar/internal/ui/theme"
	dashboardview "iftar/internal/ui/views/dashboard"
	insightsview "iftar/internal/ui/views/insights"
	prayersview "iftar/internal/ui/views/prayers"
	quranview "iftar/internal/ui/views/quran"
	trackerview "iftar/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type settingsPort interface {
	State(ctx context.Context) (trackerdto.StateOutput, error)
	UpdateSettings(ctx context.Context, input trackerdto.SettingsInput) (trackerdto.SettingsOutput, error)
	Reindex(ctx context.Context) error
}

type locationPort interface {
	SetManualLocation(ctx context.Context, city, country string) (timesdto.LocationOutput, error)
	AutoDetectLocation(ctx context.Context) (timesdto.LocationOutput, error)
	SetSchool(ctx context.Context, school int) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabPrayers
	tabQuran
	tabTracker
	tabInsights
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Prayers", "Quran", "Tracker", "Insights",
}

// ─── async messages ───────────────────────────────────────────────────────────

type locationChangedMsg struct {
	loc timesdto.LocationOutput
	err error
}

type schoolChangedMsg struct {
	school int
	err    error
}

type settingsSavedMsg struct {
	out  trackerdto.SettingsOutput
	note string
	err  error
}

type reindexedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Open    key.Binding
	PlayAll key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle / play")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		PlayAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "play all")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Open, k.Toggle},
		{k.PlayAll},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global
// help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to
// sub-views.
type Model struct {
	settings settingsPort
	location locationPort

	// Kept so style-capturing views can be rebuilt on a theme change.
	reader quranview.ReaderPort
	habits trackerview.TrackerPort

	dashView    dashboardview.Model
	prayersView prayersview.Model
	quranView   quranview.Model
	trackerView trackerview.Model
	insightView insightsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	settings settingsPort,
	location locationPort,
	times dashboardview.TimesPort,
	schedule prayersview.SchedulePort,
	prayerTracker prayersview.TrackerPort,
	reader quranview.ReaderPort,
	habits trackerview.TrackerPort,
	daily insightsview.InsightsPort,
	summary dashboardview.SummaryPort,
	progress dashboardview.ProgressPort,
) Model {
	return Model{
		settings:    settings,
		location:    location,
		reader:      reader,
		habits:      habits,
		dashView:    dashboardview.New(times, summary, progress),
		prayersView: prayersview.New(schedule, prayerTracker),
		quranView:   quranview.New(reader),
		trackerView: trackerview.New(habits),
		insightView: insightsview.New(daily),
		activeTab:   tabDashboard,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.prayersView.Init(),
		m.quranView.Init(),
		m.trackerView.Init(),
		m.insightView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case locationChangedMsg:
		if msg.err != nil {
			m.status = "location: " + msg.err.Error()
		} else {
			m.status = "location set to " + msg.loc.City + ", " + msg.loc.Country
			cmds = append(cmds, m.dashView.ReloadTimes(), m.prayersView.Reload())
		}

	case schoolChangedMsg:
		if msg.err != nil {
			m.status = "school: " + msg.err.Error()
		} else {
			m.status = "Asr school set to " + strconv.Itoa(msg.school)
			cmds = append(cmds, m.dashView.ReloadTimes(), m.prayersView.Reload())
		}

	case settingsSavedMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
		} else {
			m.status = msg.note
			cmds = append(cmds, m.applyTheme(msg.out.Theme)...)
		}

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex: " + msg.err.Error()
		} else {
			m.status = "stats index rebuilt"
			cmds = append(cmds, m.dashView.Refresh(), m.trackerView.Refresh())
		}

	// Mutations bubble up so cross-tab panes stay consistent.
	case prayersview.ToggledMsg:
		cmds = append(cmds, m.dashView.Refresh(), m.trackerView.Refresh())

	case trackerview.PrayerToggledMsg:
		cmds = append(cmds, m.dashView.Refresh(), m.prayersView.Refresh())

	case trackerview.HabitToggledMsg, trackerview.HabitAddedMsg:
		cmds = append(cmds, m.dashView.Refresh())

	case quranview.PagesRecordedMsg:
		cmds = append(cmds, m.dashView.Refresh())

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to every sub-view: async results and ticks
	// must land regardless of which tab is visible. Key messages only
	// reach the active tab.
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		cmds = append(cmds, m.updateTab(m.activeTab, keyMsg))
	} else {
		for t := tabID(0); t < tabCount; t++ {
			cmds = append(cmds, m.updateTab(t, msg))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateTab(t tabID, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch t {
	case tabDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case tabPrayers:
		m.prayersView, cmd = m.prayersView.Update(msg)
	case tabQuran:
		m.quranView, cmd = m.quranView.Update(msg)
	case tabTracker:
		m.trackerView, cmd = m.trackerView.Update(msg)
	case tabInsights:
		m.insightView, cmd = m.insightView.Update(msg)
	}
	return cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabPrayers:
		return m.prayersView.View()
	case tabQuran:
		return m.quranView.View()
	case tabTracker:
		return m.trackerView.View()
	case tabInsights:
		return m.insightView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "iftar  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "habit:add":
		if len(parts) < 2 {
			m.status = "usage: habit:add <name>"
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		m.activeTab = tabTracker
		return m, m.trackerView.AddHabit(name)

	case "habit:toggle":
		if len(parts) < 2 {
			m.status = "usage: habit:toggle <id> [date]"
			return m, nil
		}
		date := ""
		if len(parts) >= 3 {
			date = parts[2]
		}
		m.activeTab = tabTracker
		return m, m.trackerView.ToggleHabitByID(parts[1], date)

	case "prayer:toggle":
		if len(parts) < 2 {
			m.status = "usage: prayer:toggle <name> [date]"
			return m, nil
		}
		date := ""
		if len(parts) >= 3 {
			date = parts[2]
		}
		m.activeTab = tabPrayers
		return m, m.prayersView.ToggleByName(parts[1], date)

	case "quran:open":
		if len(parts) < 2 {
			m.status = "usage: quran:open <surah>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid surah number"
			return m, nil
		}
		m.activeTab = tabQuran
		return m, m.quranView.OpenSurah(n)

	case "quran:pages":
		if len(parts) < 2 {
			m.status = "usage: quran:pages <completed>"
			return m, nil
		}
		pages, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid page count"
			return m, nil
		}
		return m, m.quranView.RecordPages(pages)

	case "location:set":
		if len(parts) < 3 {
			m.status = "usage: location:set <city> <country>"
			return m, nil
		}
		city := parts[1]
		country := strings.Join(parts[2:], " ")
		return m, m.setLocationCmd(city, country)

	case "location:auto":
		m.status = "detecting location…"
		return m, m.autoLocationCmd()

	case "school:set":
		if len(parts) < 2 {
			m.status = "usage: school:set <0|1>"
			return m, nil
		}
		school, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid school"
			return m, nil
		}
		return m, m.setSchoolCmd(school)

	case "theme:set":
		if len(parts) < 2 || (parts[1] != "dark" && parts[1] != "light") {
			m.status = "usage: theme:set <dark|light>"
			return m, nil
		}
		return m, m.saveSettingsCmd(func(s *trackerdto.SettingsInput) {
			s.Theme = parts[1]
		}, "theme set to "+parts[1])

	case "language:set":
		if len(parts) < 2 {
			m.status = "usage: language:set <tag>"
			return m, nil
		}
		return m, m.saveSettingsCmd(func(s *trackerdto.SettingsInput) {
			s.Language = parts[1]
		}, "language set to "+parts[1])

	case "insight:day":
		if len(parts) < 2 {
			m.status = "usage: insight:day <1-30>"
			return m, nil
		}
		day, err := strconv.Atoi(parts[1])
		if err != nil || day < 1 || day > 30 {
			m.status = "invalid day"
			return m, nil
		}
		m.activeTab = tabInsights
		return m, m.insightView.ShowDay(day)

	case "reindex":
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabQuran:
		return m.quranView.Filtering()
	case tabTracker:
		return m.trackerView.Filtering()
	}
	return false
}

// applyTheme swaps the palette when a saved settings snapshot carries a
// different theme. Most styles read the palette at render time, but the
// quran and tracker views capture list-delegate styles at construction,
// so those two are rebuilt and reloaded.
func (m *Model) applyTheme(name string) []tea.Cmd {
	if name == "" || name == theme.Current() {
		return nil
	}
	theme.Apply(name)
	m.quranView = quranview.New(m.reader)
	m.trackerView = trackerview.New(m.habits)
	m.propagateSize()
	return []tea.Cmd{m.quranView.Init(), m.trackerView.Init()}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.prayersView, _ = m.prayersView.Update(sz)
	m.quranView, _ = m.quranView.Update(sz)
	m.trackerView, _ = m.trackerView.Update(sz)
	m.insightView, _ = m.insightView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) setLocationCmd(city, country string) tea.Cmd {
	return func() tea.Msg {
		loc, err := m.location.SetManualLocation(context.Background(), city, country)
		return locationChangedMsg{loc: loc, err: err}
	}
}

func (m Model) autoLocationCmd() tea.Cmd {
	return func() tea.Msg {
		loc, err := m.location.AutoDetectLocation(context.Background())
		return locationChangedMsg{loc: loc, err: err}
	}
}

func (m Model) setSchoolCmd(school int) tea.Cmd {
	return func() tea.Msg {
		err := m.location.SetSchool(context.Background(), school)
		return schoolChangedMsg{school: school, err: err}
	}
}

func (m Model) saveSettingsCmd(mutate func(*trackerdto.SettingsInput), note string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.settings.State(context.Background())
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		s := state.Settings
		input := trackerdto.SettingsInput{
			Location: trackerdto.LocationInput{
				City:    s.City,
				Country: s.Country,
				Lat:     s.Lat,
				Lng:     s.Lng,
				Manual:  s.Manual,
			},
			Theme:    s.Theme,
			Language: s.Language,
			School:   s.School,
		}
		mutate(&input)
		out, err := m.settings.UpdateSettings(context.Background(), input)
		return settingsSavedMsg{out: out, note: note, err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		return reindexedMsg{err: m.settings.Reindex(context.Background())}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
