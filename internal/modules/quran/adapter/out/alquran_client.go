package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"iftar/internal/modules/quran/domain"
	apperrors "iftar/internal/platform/errors"
)

const (
	alquranBaseURL = "https://api.alquran.cloud/v1"
	// textEdition carries the canonical Arabic script; translation
	// and audio editions are requested alongside it.
	textEdition = "quran-uthmani"
)

// AlquranClient fetches chapter text from the alquran.cloud API.
type AlquranClient struct {
	base   string
	client *http.Client
}

func NewAlquranClient() *AlquranClient {
	return NewAlquranClientWithBase(alquranBaseURL)
}

func NewAlquranClientWithBase(base string) *AlquranClient {
	return &AlquranClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type alquranSurah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

type alquranAyah struct {
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
	Audio         string `json:"audio"`
	Page          int    `json:"page"`
	Juz           int    `json:"juz"`
}

type alquranEdition struct {
	alquranSurah
	Ayahs []alquranAyah `json:"ayahs"`
}

func (c *AlquranClient) ListSurahs(ctx context.Context) ([]domain.Surah, error) {
	var envelope struct {
		Code int            `json:"code"`
		Data []alquranSurah `json:"data"`
	}
	if err := c.fetch(ctx, c.base+"/surah", &envelope); err != nil {
		return nil, err
	}
	if envelope.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: surah list returned code %d", apperrors.ErrProviderUnavailable, envelope.Code)
	}
	surahs := make([]domain.Surah, len(envelope.Data))
	for i, s := range envelope.Data {
		surahs[i] = toSurah(s)
	}
	return surahs, nil
}

// GetChapter requests the Arabic text, the translation, and the
// recitation edition in one call and zips their ayahs together.
func (c *AlquranClient) GetChapter(ctx context.Context, number int, translationEdition, audioEdition string) (domain.Chapter, error) {
	editions := strings.Join([]string{textEdition, translationEdition, audioEdition}, ",")
	url := fmt.Sprintf("%s/surah/%d/editions/%s", c.base, number, editions)

	var envelope struct {
		Code int              `json:"code"`
		Data []alquranEdition `json:"data"`
	}
	if err := c.fetch(ctx, url, &envelope); err != nil {
		return domain.Chapter{}, err
	}
	if envelope.Code != http.StatusOK {
		return domain.Chapter{}, fmt.Errorf("%w: surah %d returned code %d", apperrors.ErrProviderUnavailable, number, envelope.Code)
	}
	if len(envelope.Data) != 3 {
		return domain.Chapter{}, fmt.Errorf("%w: surah %d returned %d editions, want 3", apperrors.ErrProviderUnavailable, number, len(envelope.Data))
	}

	text, translation, audio := envelope.Data[0], envelope.Data[1], envelope.Data[2]
	if len(translation.Ayahs) != len(text.Ayahs) || len(audio.Ayahs) != len(text.Ayahs) {
		return domain.Chapter{}, fmt.Errorf("%w: surah %d editions are not aligned", apperrors.ErrProviderUnavailable, number)
	}

	chapter := domain.Chapter{Surah: toSurah(text.alquranSurah)}
	chapter.Verses = make([]domain.Verse, len(text.Ayahs))
	for i, ayah := range text.Ayahs {
		chapter.Verses[i] = domain.Verse{
			NumberInSurah: ayah.NumberInSurah,
			Text:          ayah.Text,
			Translation:   translation.Ayahs[i].Text,
			AudioURL:      audio.Ayahs[i].Audio,
			Page:          ayah.Page,
			Juz:           ayah.Juz,
		}
	}
	return chapter, nil
}

func (c *AlquranClient) fetch(ctx context.Context, url string, target any) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if lastErr = c.fetchOnce(ctx, url, target); lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, lastErr)
}

func (c *AlquranClient) fetchOnce(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func toSurah(s alquranSurah) domain.Surah {
	return domain.Surah{
		Number:             s.Number,
		Name:               s.Name,
		EnglishName:        s.EnglishName,
		EnglishTranslation: s.EnglishNameTranslation,
		VerseCount:         s.NumberOfAyahs,
		RevelationPlace:    s.RevelationType,
	}
}
