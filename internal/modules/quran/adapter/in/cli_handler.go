package in

import (
	"context"

	"iftar/internal/modules/quran/dto"
	quranin "iftar/internal/modules/quran/port/in"
)

type CLIHandler struct {
	usecase quranin.Usecase
}

func NewCLIHandler(usecase quranin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListSurahs(ctx context.Context) ([]dto.SurahOutput, error) {
	return h.usecase.ListSurahs(ctx)
}

func (h CLIHandler) OpenChapter(ctx context.Context, number int) (dto.ChapterOutput, error) {
	return h.usecase.OpenChapter(ctx, number)
}

func (h CLIHandler) RecordPages(ctx context.Context, pages int) (dto.ProgressOutput, error) {
	return h.usecase.RecordPages(ctx, pages)
}

func (h CLIHandler) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	return h.usecase.Progress(ctx)
}
