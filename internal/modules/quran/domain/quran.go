package domain

import "fmt"

// Surah is the chapter summary as listed by the text provider.
type Surah struct {
	Number             int
	Name               string
	EnglishName        string
	EnglishTranslation string
	VerseCount         int
	RevelationPlace    string
}

func (s Surah) Validate() error {
	if s.Number < 1 || s.Number > 114 {
		return fmt.Errorf("surah number %d out of range", s.Number)
	}
	return nil
}

// Verse aligns the Arabic text, its translation, and the recitation clip
// for one ayah. The three come from parallel edition sequences and are
// index-aligned by the provider.
type Verse struct {
	NumberInSurah int
	Text          string
	Translation   string
	AudioURL      string
	Page          int
	Juz           int
}

type Chapter struct {
	Surah  Surah
	Verses []Verse
}

// AudioURLs extracts the ordered clip list for playback.
func (c Chapter) AudioURLs() []string {
	urls := make([]string, len(c.Verses))
	for i, v := range c.Verses {
		urls[i] = v.AudioURL
	}
	return urls
}
