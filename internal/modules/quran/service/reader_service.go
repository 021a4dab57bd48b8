package service

import (
	"context"
	"fmt"

	"iftar/internal/modules/quran/domain"
	quranout "iftar/internal/modules/quran/port/out"
	apperrors "iftar/internal/platform/errors"
)

// DefaultAudioEdition is the recitation streamed for verse playback.
const DefaultAudioEdition = "ar.alafasy"

// translationEditions maps the configured language tag to an
// alquran.cloud edition identifier.
var translationEditions = map[string]string{
	"en": "en.asad",
	"de": "de.aburida",
	"fr": "fr.hamidullah",
	"tr": "tr.diyanet",
	"ur": "ur.jalandhry",
}

const fallbackTranslationEdition = "en.asad"

// ReaderService fetches chapters and keeps the reading position in
// sync with the rest of the application state.
type ReaderService struct {
	provider quranout.Provider
	recorder quranout.ProgressRecorder
}

func NewReaderService(provider quranout.Provider, recorder quranout.ProgressRecorder) *ReaderService {
	return &ReaderService{provider: provider, recorder: recorder}
}

func (s *ReaderService) ListSurahs(ctx context.Context) ([]domain.Surah, error) {
	surahs, err := s.provider.ListSurahs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list surahs: %w", err)
	}
	return surahs, nil
}

// OpenChapter loads a chapter with the translation matching the
// configured language and records it as the last-read surah.
func (s *ReaderService) OpenChapter(ctx context.Context, number int) (domain.Chapter, error) {
	if number < 1 || number > 114 {
		return domain.Chapter{}, fmt.Errorf("%w: surah number %d", apperrors.ErrInvalidInput, number)
	}
	lang, err := s.recorder.TranslationLanguage(ctx)
	if err != nil {
		return domain.Chapter{}, err
	}
	edition, ok := translationEditions[lang]
	if !ok {
		edition = fallbackTranslationEdition
	}
	chapter, err := s.provider.GetChapter(ctx, number, edition, DefaultAudioEdition)
	if err != nil {
		return domain.Chapter{}, fmt.Errorf("open surah %d: %w", number, err)
	}
	if err := s.recorder.RecordOpen(ctx, number, 1); err != nil {
		return domain.Chapter{}, err
	}
	return chapter, nil
}

func (s *ReaderService) RecordPages(ctx context.Context, pages int) error {
	return s.recorder.RecordPages(ctx, pages)
}

func (s *ReaderService) Progress(ctx context.Context) (lastSurah, lastAyah, completedPages, totalPages, percent int, err error) {
	return s.recorder.Progress(ctx)
}
