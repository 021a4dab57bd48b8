package out

import (
	"context"

	"iftar/internal/modules/quran/domain"
)

// Provider fetches chapter text, translation, and recitation audio.
type Provider interface {
	ListSurahs(ctx context.Context) ([]domain.Surah, error)
	GetChapter(ctx context.Context, number int, translationEdition, audioEdition string) (domain.Chapter, error)
}

// Player plays a single audio clip at a time. Start returns a channel
// that yields exactly one value when the clip finishes: nil for a
// natural end, an error when the clip was killed or failed.
type Player interface {
	Start(ctx context.Context, url string) (<-chan error, error)
	Stop() error
}

// ProgressRecorder persists reading position alongside the rest of
// the application state.
type ProgressRecorder interface {
	RecordOpen(ctx context.Context, surah, ayah int) error
	RecordPages(ctx context.Context, pages int) error
	Progress(ctx context.Context) (lastSurah, lastAyah, completedPages, totalPages, percent int, err error)
	// TranslationLanguage reports the reader's configured language
	// tag, used to pick the translation edition.
	TranslationLanguage(ctx context.Context) (string, error)
}
