package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"iftar/internal/modules/prayertimes/domain"
	timesout "iftar/internal/modules/prayertimes/port/out"
	apperrors "iftar/internal/platform/errors"
)

const aladhanBaseURL = "https://api.aladhan.com/v1"

// AladhanClient talks to the AlAdhan prayer-times API. One bounded retry
// and a hard client timeout keep a flaky provider from wedging the UI.
type AladhanClient struct {
	baseURL string
	http    *http.Client
}

func NewAladhanClient() timesout.Provider {
	return NewAladhanClientWithBase(aladhanBaseURL)
}

func NewAladhanClientWithBase(baseURL string) timesout.Provider {
	return &AladhanClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type aladhanEnvelope struct {
	Code int         `json:"code"`
	Data aladhanData `json:"data"`
}

type aladhanData struct {
	Timings struct {
		Fajr     string `json:"Fajr"`
		Sunrise  string `json:"Sunrise"`
		Dhuhr    string `json:"Dhuhr"`
		Asr      string `json:"Asr"`
		Sunset   string `json:"Sunset"`
		Maghrib  string `json:"Maghrib"`
		Isha     string `json:"Isha"`
		Imsak    string `json:"Imsak"`
		Midnight string `json:"Midnight"`
	} `json:"timings"`
	Date struct {
		Hijri     aladhanCalendarDate `json:"hijri"`
		Gregorian aladhanCalendarDate `json:"gregorian"`
	} `json:"date"`
}

type aladhanCalendarDate struct {
	Day   string `json:"day"`
	Month struct {
		Number int    `json:"number"`
		En     string `json:"en"`
	} `json:"month"`
	Year string `json:"year"`
}

func (c *AladhanClient) ByCity(ctx context.Context, city, country string, method, school int) (domain.Day, error) {
	query := url.Values{}
	query.Set("city", city)
	query.Set("country", country)
	query.Set("method", strconv.Itoa(method))
	query.Set("school", strconv.Itoa(school))
	return c.fetch(ctx, c.baseURL+"/timingsByCity?"+query.Encode())
}

func (c *AladhanClient) ByCoordinates(ctx context.Context, lat, lng float64, method, school int) (domain.Day, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("method", strconv.Itoa(method))
	query.Set("school", strconv.Itoa(school))
	return c.fetch(ctx, c.baseURL+"/timings?"+query.Encode())
}

func (c *AladhanClient) fetch(ctx context.Context, endpoint string) (domain.Day, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		day, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return day, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return domain.Day{}, fmt.Errorf("%w: %s", apperrors.ErrProviderUnavailable, lastErr)
}

func (c *AladhanClient) fetchOnce(ctx context.Context, endpoint string) (domain.Day, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Day{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Day{}, fmt.Errorf("prayer times request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.Day{}, fmt.Errorf("prayer times status %d", resp.StatusCode)
	}
	envelope := aladhanEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return domain.Day{}, fmt.Errorf("decode prayer times: %w", err)
	}
	if envelope.Code != http.StatusOK {
		return domain.Day{}, fmt.Errorf("prayer times payload code %d", envelope.Code)
	}
	return toDay(envelope.Data), nil
}

func toDay(data aladhanData) domain.Day {
	return domain.Day{
		Timings: domain.Timetable{
			Fajr:     data.Timings.Fajr,
			Sunrise:  data.Timings.Sunrise,
			Dhuhr:    data.Timings.Dhuhr,
			Asr:      data.Timings.Asr,
			Sunset:   data.Timings.Sunset,
			Maghrib:  data.Timings.Maghrib,
			Isha:     data.Timings.Isha,
			Imsak:    data.Timings.Imsak,
			Midnight: data.Timings.Midnight,
		},
		Hijri: domain.HijriDate{
			Day:       atoi(data.Date.Hijri.Day),
			Month:     data.Date.Hijri.Month.Number,
			MonthName: data.Date.Hijri.Month.En,
			Year:      atoi(data.Date.Hijri.Year),
		},
		Gregorian: domain.GregorianDate{
			Day:       atoi(data.Date.Gregorian.Day),
			Month:     data.Date.Gregorian.Month.Number,
			MonthName: data.Date.Gregorian.Month.En,
			Year:      atoi(data.Date.Gregorian.Year),
		},
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
