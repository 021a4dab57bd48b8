package domain

// Insight bundles the devotional content shown for one day of the
// lunar month: a verse, a hadith, and a historical event.
type Insight struct {
	Day        int
	Verse      Verse
	Hadith     Hadith
	Historical Historical
}

type Verse struct {
	Reference   string
	Arabic      string
	Translation string
}

type Hadith struct {
	Text     string
	Narrator string
	Source   string
}

type Historical struct {
	Title       string
	Description string
}
