package dto

type SurahOutput struct {
	Number             int
	Name               string
	EnglishName        string
	EnglishTranslation string
	VerseCount         int
	RevelationPlace    string
}

type VerseOutput struct {
	NumberInSurah int
	Text          string
	Translation   string
	Page          int
	Juz           int
}

type ChapterOutput struct {
	Surah  SurahOutput
	Verses []VerseOutput
}

// PlaybackStatus is a snapshot of the playback controller. Gen
// identifies the started clip so that stale end-of-clip events can be
// told apart from the current one.
type PlaybackStatus struct {
	Playing    bool
	Index      int
	Sequential bool
	Gen        int
}

type ProgressOutput struct {
	LastSurah      int
	LastAyah       int
	CompletedPages int
	TotalPages     int
	Percent        int
}
