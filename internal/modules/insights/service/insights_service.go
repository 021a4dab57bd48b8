package service

import (
	"context"
	"fmt"
	"sync"

	"iftar/internal/modules/insights/domain"
	insightsout "iftar/internal/modules/insights/port/out"
)

// InsightsService serves daily devotional content. The dataset is
// loaded once and cached; it never changes at runtime.
type InsightsService struct {
	source   insightsout.Source
	resolver insightsout.DayResolver

	once    sync.Once
	entries []domain.Insight
	loadErr error
}

func NewInsightsService(source insightsout.Source, resolver insightsout.DayResolver) *InsightsService {
	return &InsightsService{source: source, resolver: resolver}
}

func (s *InsightsService) load() ([]domain.Insight, error) {
	s.once.Do(func() {
		s.entries, s.loadErr = s.source.All()
		if s.loadErr == nil && len(s.entries) == 0 {
			s.loadErr = fmt.Errorf("insight dataset is empty")
		}
	})
	return s.entries, s.loadErr
}

// ForDay returns the entry for the given lunar day. Days outside the
// dataset fall back to the first entry so the view always has
// content.
func (s *InsightsService) ForDay(day int) (domain.Insight, error) {
	entries, err := s.load()
	if err != nil {
		return domain.Insight{}, err
	}
	for _, e := range entries {
		if e.Day == day {
			return e, nil
		}
	}
	return entries[0], nil
}

// ForToday resolves the current lunar day and serves its entry.
func (s *InsightsService) ForToday(ctx context.Context) (domain.Insight, error) {
	day, err := s.resolver.LunarDay(ctx)
	if err != nil {
		return domain.Insight{}, err
	}
	return s.ForDay(day)
}

func (s *InsightsService) All() ([]domain.Insight, error) {
	return s.load()
}
