package usecase

import (
	"context"

	"iftar/internal/modules/insights/domain"
	"iftar/internal/modules/insights/dto"
	"iftar/internal/modules/insights/service"
)

type Interactor struct {
	svc *service.InsightsService
}

func New(svc *service.InsightsService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) ForDay(ctx context.Context, day int) (dto.InsightOutput, error) {
	insight, err := i.svc.ForDay(day)
	if err != nil {
		return dto.InsightOutput{}, err
	}
	return toOutput(insight), nil
}

func (i *Interactor) ForToday(ctx context.Context) (dto.InsightOutput, error) {
	insight, err := i.svc.ForToday(ctx)
	if err != nil {
		return dto.InsightOutput{}, err
	}
	return toOutput(insight), nil
}

func (i *Interactor) All(ctx context.Context) ([]dto.InsightOutput, error) {
	insights, err := i.svc.All()
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsightOutput, len(insights))
	for n, ins := range insights {
		out[n] = toOutput(ins)
	}
	return out, nil
}

func toOutput(in domain.Insight) dto.InsightOutput {
	return dto.InsightOutput{
		Day:              in.Day,
		VerseReference:   in.Verse.Reference,
		VerseArabic:      in.Verse.Arabic,
		VerseTranslation: in.Verse.Translation,
		HadithText:       in.Hadith.Text,
		HadithNarrator:   in.Hadith.Narrator,
		HadithSource:     in.Hadith.Source,
		HistoricalTitle:  in.Historical.Title,
		HistoricalText:   in.Historical.Description,
	}
}
