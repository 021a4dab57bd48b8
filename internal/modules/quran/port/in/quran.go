package in

import (
	"context"

	"iftar/internal/modules/quran/dto"
)

// Usecase is the inbound port for the reader and its playback.
type Usecase interface {
	ListSurahs(ctx context.Context) ([]dto.SurahOutput, error)
	OpenChapter(ctx context.Context, number int) (dto.ChapterOutput, error)
	RecordPages(ctx context.Context, pages int) (dto.ProgressOutput, error)
	Progress(ctx context.Context) (dto.ProgressOutput, error)

	Play(ctx context.Context, index int) (dto.PlaybackStatus, error)
	PlayAll(ctx context.Context) (dto.PlaybackStatus, error)
	StopPlayback() error
	PlaybackStatus() dto.PlaybackStatus
	// AwaitClip blocks until the clip started under gen ends. It
	// returns ErrStaleClip when a newer clip superseded gen.
	AwaitClip(ctx context.Context, gen int) error
	// ClipEnded feeds the end of clip gen back into the machine and
	// reports the resulting state, auto-starting the next clip in
	// sequential mode.
	ClipEnded(ctx context.Context, gen int, playErr error) (dto.PlaybackStatus, error)
}
