package usecase

import (
	"context"

	"iftar/internal/modules/quran/domain"
	"iftar/internal/modules/quran/dto"
	"iftar/internal/modules/quran/service"
)

// ErrStaleClip is re-exported so inbound adapters can filter
// superseded end-of-clip events without importing the service layer.
var ErrStaleClip = service.ErrStaleClip

// Interactor implements the reader inbound port on top of the reader
// service and the playback controller. Opening a chapter loads its
// clips into the controller as a side effect.
type Interactor struct {
	reader   *service.ReaderService
	playback *service.PlaybackController
}

func New(reader *service.ReaderService, playback *service.PlaybackController) *Interactor {
	return &Interactor{reader: reader, playback: playback}
}

func (i *Interactor) ListSurahs(ctx context.Context) ([]dto.SurahOutput, error) {
	surahs, err := i.reader.ListSurahs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SurahOutput, len(surahs))
	for n, s := range surahs {
		out[n] = toSurahOutput(s)
	}
	return out, nil
}

func (i *Interactor) OpenChapter(ctx context.Context, number int) (dto.ChapterOutput, error) {
	chapter, err := i.reader.OpenChapter(ctx, number)
	if err != nil {
		return dto.ChapterOutput{}, err
	}
	i.playback.Load(chapter.AudioURLs())
	return toChapterOutput(chapter), nil
}

func (i *Interactor) RecordPages(ctx context.Context, pages int) (dto.ProgressOutput, error) {
	if err := i.reader.RecordPages(ctx, pages); err != nil {
		return dto.ProgressOutput{}, err
	}
	return i.Progress(ctx)
}

func (i *Interactor) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	surah, ayah, completed, total, percent, err := i.reader.Progress(ctx)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return dto.ProgressOutput{
		LastSurah:      surah,
		LastAyah:       ayah,
		CompletedPages: completed,
		TotalPages:     total,
		Percent:        percent,
	}, nil
}

func (i *Interactor) Play(ctx context.Context, index int) (dto.PlaybackStatus, error) {
	st, err := i.playback.Play(ctx, index)
	return toPlaybackStatus(st), err
}

func (i *Interactor) PlayAll(ctx context.Context) (dto.PlaybackStatus, error) {
	st, err := i.playback.PlayAll(ctx)
	return toPlaybackStatus(st), err
}

func (i *Interactor) StopPlayback() error {
	return i.playback.Stop()
}

func (i *Interactor) PlaybackStatus() dto.PlaybackStatus {
	return toPlaybackStatus(i.playback.Status())
}

func (i *Interactor) AwaitClip(ctx context.Context, gen int) error {
	return i.playback.Await(ctx, gen)
}

func (i *Interactor) ClipEnded(ctx context.Context, gen int, playErr error) (dto.PlaybackStatus, error) {
	st, err := i.playback.ClipEnded(ctx, gen, playErr)
	return toPlaybackStatus(st), err
}

func toSurahOutput(s domain.Surah) dto.SurahOutput {
	return dto.SurahOutput{
		Number:             s.Number,
		Name:               s.Name,
		EnglishName:        s.EnglishName,
		EnglishTranslation: s.EnglishTranslation,
		VerseCount:         s.VerseCount,
		RevelationPlace:    s.RevelationPlace,
	}
}

func toChapterOutput(c domain.Chapter) dto.ChapterOutput {
	out := dto.ChapterOutput{Surah: toSurahOutput(c.Surah)}
	out.Verses = make([]dto.VerseOutput, len(c.Verses))
	for n, v := range c.Verses {
		out.Verses[n] = dto.VerseOutput{
			NumberInSurah: v.NumberInSurah,
			Text:          v.Text,
			Translation:   v.Translation,
			Page:          v.Page,
			Juz:           v.Juz,
		}
	}
	return out
}

func toPlaybackStatus(st service.Status) dto.PlaybackStatus {
	return dto.PlaybackStatus{
		Playing:    st.Playing,
		Index:      st.Index,
		Sequential: st.Sequential,
		Gen:        st.Gen,
	}
}
