package dto

type InsightOutput struct {
	Day              int
	VerseReference   string
	VerseArabic      string
	VerseTranslation string
	HadithText       string
	HadithNarrator   string
	HadithSource     string
	HistoricalTitle  string
	HistoricalText   string
}
