package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	insightsinadapter "iftar/internal/modules/insights/adapter/in"
	insightsoutadapter "iftar/internal/modules/insights/adapter/out"
	insightsin "iftar/internal/modules/insights/port/in"
	insightsservice "iftar/internal/modules/insights/service"
	insightsusecase "iftar/internal/modules/insights/usecase"
	timesinadapter "iftar/internal/modules/prayertimes/adapter/in"
	timesoutadapter "iftar/internal/modules/prayertimes/adapter/out"
	timesin "iftar/internal/modules/prayertimes/port/in"
	timesservice "iftar/internal/modules/prayertimes/service"
	timesusecase "iftar/internal/modules/prayertimes/usecase"
	quraninadapter "iftar/internal/modules/quran/adapter/in"
	quranoutadapter "iftar/internal/modules/quran/adapter/out"
	quranin "iftar/internal/modules/quran/port/in"
	quranout "iftar/internal/modules/quran/port/out"
	quranservice "iftar/internal/modules/quran/service"
	quranusecase "iftar/internal/modules/quran/usecase"
	trackerinadapter "iftar/internal/modules/tracker/adapter/in"
	trackeroutadapter "iftar/internal/modules/tracker/adapter/out"
	trackerin "iftar/internal/modules/tracker/port/in"
	trackerservice "iftar/internal/modules/tracker/service"
	trackerusecase "iftar/internal/modules/tracker/usecase"
	"iftar/internal/platform/clock"
	"iftar/internal/platform/config"
	"iftar/internal/platform/id"
	uiapp "iftar/internal/ui/app"
	"iftar/internal/ui/theme"
)

// App wires every module once and hands the CLI thin handlers. The
// usecase fields back the TUI, which needs the port signatures the
// handlers flatten away.
type App struct {
	TrackerCLI  trackerinadapter.CLIHandler
	TimesCLI    timesinadapter.CLIHandler
	QuranCLI    quraninadapter.CLIHandler
	InsightsCLI insightsinadapter.CLIHandler

	trackerUC  trackerin.Usecase
	timesUC    timesin.Usecase
	quranUC    quranin.Usecase
	insightsUC insightsin.Usecase
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	snapshots := trackeroutadapter.NewFileSnapshotStore(cfg.StatePath)
	projector, err := trackeroutadapter.NewSQLiteStatsProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new stats projector: %w", err)
	}
	trackerSvc := trackerservice.NewTrackerService(clk, ids, snapshots, projector)
	trackerSvc.Load(context.Background())
	trackerUC := trackerusecase.NewInteractor(trackerSvc, clk)

	timesSvc := timesservice.NewTimesService(
		timesoutadapter.NewAladhanClient(),
		timesoutadapter.NewIPLocator(),
	)
	timesUC := timesusecase.NewInteractor(timesSvc, trackerUC, clk)

	progress := quranoutadapter.NewTrackerProgressAdapter(trackerUC)
	readerSvc := quranservice.NewReaderService(quranoutadapter.NewAlquranClient(), progress)
	// Playback degrades to a no-op when no player binary is present;
	// reading and progress tracking still work.
	var player quranout.Player
	execPlayer, playerErr := quranoutadapter.NewExecPlayer()
	if playerErr == nil {
		player = execPlayer
	} else {
		player = quranoutadapter.SilentPlayer{}
	}
	playback := quranservice.NewPlaybackController(player)
	quranUC := quranusecase.New(readerSvc, playback)

	insightsSvc := insightsservice.NewInsightsService(
		insightsoutadapter.NewEmbeddedSource(),
		insightsoutadapter.NewHijriDayResolver(timesUC, clk),
	)
	insightsUC := insightsusecase.New(insightsSvc)

	return &App{
		TrackerCLI:  trackerinadapter.NewCLIHandler(trackerUC),
		TimesCLI:    timesinadapter.NewCLIHandler(timesUC),
		QuranCLI:    quraninadapter.NewCLIHandler(quranUC),
		InsightsCLI: insightsinadapter.NewCLIHandler(insightsUC),

		trackerUC:  trackerUC,
		timesUC:    timesUC,
		quranUC:    quranUC,
		insightsUC: insightsUC,
	}, nil
}

// RunTUI applies the saved theme and starts the full-screen program.
func RunTUI(app *App) error {
	state, err := app.trackerUC.State(context.Background())
	if err == nil {
		theme.Apply(state.Settings.Theme)
	}

	model := uiapp.NewModel(
		app.trackerUC,
		app.timesUC,
		app.timesUC,
		app.timesUC,
		app.trackerUC,
		app.quranUC,
		app.trackerUC,
		app.insightsUC,
		app.trackerUC,
		app.quranUC,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
