package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"iftar/internal/modules/prayertimes/domain"
	timesout "iftar/internal/modules/prayertimes/port/out"
)

const ipapiEndpoint = "http://ip-api.com/json/?fields=status,message,country,city,lat,lon"

// IPLocator approximates the device position from its public IP. It is
// the terminal stand-in for platform geolocation; denial or failure is
// returned to the caller, never swallowed.
type IPLocator struct {
	endpoint string
	http     *http.Client
}

func NewIPLocator() timesout.Locator {
	return NewIPLocatorWithEndpoint(ipapiEndpoint)
}

func NewIPLocatorWithEndpoint(endpoint string) timesout.Locator {
	return &IPLocator{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (l *IPLocator) Locate(ctx context.Context) (domain.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return domain.Position{}, fmt.Errorf("build locate request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return domain.Position{}, fmt.Errorf("locate request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.Position{}, fmt.Errorf("locate status %d", resp.StatusCode)
	}
	payload := struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Country string  `json:"country"`
		City    string  `json:"city"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Position{}, fmt.Errorf("decode locate response: %w", err)
	}
	if payload.Status != "success" {
		return domain.Position{}, fmt.Errorf("locate failed: %s", payload.Message)
	}
	return domain.Position{
		Lat:     payload.Lat,
		Lng:     payload.Lon,
		City:    payload.City,
		Country: payload.Country,
	}, nil
}
