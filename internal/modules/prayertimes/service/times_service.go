package service

import (
	"context"

	"iftar/internal/modules/prayertimes/domain"
	timesout "iftar/internal/modules/prayertimes/port/out"
)

// CalcMethod selects the provider's calculation convention. Method 2
// (Islamic Society of North America) matches the original deployment and
// is not user-configurable; the school flag is.
const CalcMethod = 2

type TimesService struct {
	provider timesout.Provider
	locator  timesout.Locator
}

func NewTimesService(provider timesout.Provider, locator timesout.Locator) *TimesService {
	return &TimesService{provider: provider, locator: locator}
}

// Fetch picks the coordinate lookup when coordinates are known and the
// location is not manually pinned, otherwise the city lookup.
func (s *TimesService) Fetch(ctx context.Context, loc domain.Position, manual bool, school int) (domain.Day, error) {
	if loc.Lat != 0 && loc.Lng != 0 && !manual {
		return s.provider.ByCoordinates(ctx, loc.Lat, loc.Lng, CalcMethod, school)
	}
	return s.provider.ByCity(ctx, loc.City, loc.Country, CalcMethod, school)
}

func (s *TimesService) Locate(ctx context.Context) (domain.Position, error) {
	return s.locator.Locate(ctx)
}
