package out_test

import (
	"testing"

	out "iftar/internal/modules/insights/adapter/out"
)

func TestEmbeddedDatasetCoversTheFullMonth(t *testing.T) {
	t.Parallel()
	entries, err := out.NewEmbeddedSource().All()
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(entries) != 30 {
		t.Fatalf("expected 30 daily entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Day != i+1 {
			t.Fatalf("expected entries sorted 1..30, got day %d at position %d", e.Day, i)
		}
		if e.Verse.Reference == "" || e.Verse.Translation == "" {
			t.Fatalf("day %d: incomplete verse: %+v", e.Day, e.Verse)
		}
		if e.Hadith.Text == "" || e.Hadith.Source == "" {
			t.Fatalf("day %d: incomplete hadith: %+v", e.Day, e.Hadith)
		}
		if e.Historical.Title == "" || e.Historical.Description == "" {
			t.Fatalf("day %d: incomplete historical note: %+v", e.Day, e.Historical)
		}
	}
}
