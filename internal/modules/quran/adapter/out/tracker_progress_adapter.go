package out

import (
	"context"

	trackerdto "iftar/internal/modules/tracker/dto"
	trackerin "iftar/internal/modules/tracker/port/in"
)

// TrackerProgressAdapter persists reading position through the
// tracker, so the reader shares one snapshot with habits and prayers.
type TrackerProgressAdapter struct {
	tracker trackerin.Usecase
}

func NewTrackerProgressAdapter(tracker trackerin.Usecase) *TrackerProgressAdapter {
	return &TrackerProgressAdapter{tracker: tracker}
}

func (a *TrackerProgressAdapter) RecordOpen(ctx context.Context, surah, ayah int) error {
	state, err := a.tracker.State(ctx)
	if err != nil {
		return err
	}
	_, err = a.tracker.UpdateQuranProgress(ctx, trackerdto.UpdateProgressInput{
		Surah:          surah,
		Ayah:           ayah,
		CompletedPages: state.Progress.CompletedPages,
	})
	return err
}

func (a *TrackerProgressAdapter) RecordPages(ctx context.Context, pages int) error {
	state, err := a.tracker.State(ctx)
	if err != nil {
		return err
	}
	_, err = a.tracker.UpdateQuranProgress(ctx, trackerdto.UpdateProgressInput{
		Surah:          state.Progress.LastSurah,
		Ayah:           state.Progress.LastAyah,
		CompletedPages: pages,
	})
	return err
}

func (a *TrackerProgressAdapter) Progress(ctx context.Context) (lastSurah, lastAyah, completedPages, totalPages, percent int, err error) {
	state, err := a.tracker.State(ctx)
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	p := state.Progress
	return p.LastSurah, p.LastAyah, p.CompletedPages, p.TotalPages, p.Percent, nil
}

func (a *TrackerProgressAdapter) TranslationLanguage(ctx context.Context) (string, error) {
	state, err := a.tracker.State(ctx)
	if err != nil {
		return "", err
	}
	return state.Settings.Language, nil
}
