package out

import (
	"context"

	"iftar/internal/modules/prayertimes/domain"
)

// Provider looks up one day's prayer times from the external calculator.
// Implementations carry their own timeout and bounded retry; errors wrap
// apperrors.ErrProviderUnavailable.
type Provider interface {
	ByCity(ctx context.Context, city, country string, method, school int) (domain.Day, error)
	ByCoordinates(ctx context.Context, lat, lng float64, method, school int) (domain.Day, error)
}

// Locator resolves the device's approximate position.
type Locator interface {
	Locate(ctx context.Context) (domain.Position, error)
}
