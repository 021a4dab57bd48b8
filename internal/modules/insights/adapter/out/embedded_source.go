package out

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"iftar/internal/modules/insights/domain"
)

//go:embed insights.yaml
var insightsYAML []byte

// EmbeddedSource decodes the insight dataset bundled into the binary.
type EmbeddedSource struct{}

func NewEmbeddedSource() EmbeddedSource {
	return EmbeddedSource{}
}

type insightEntry struct {
	Day   int `yaml:"day"`
	Verse struct {
		Reference   string `yaml:"reference"`
		Arabic      string `yaml:"arabic"`
		Translation string `yaml:"translation"`
	} `yaml:"verse"`
	Hadith struct {
		Text     string `yaml:"text"`
		Narrator string `yaml:"narrator"`
		Source   string `yaml:"source"`
	} `yaml:"hadith"`
	Historical struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"historical"`
}

func (EmbeddedSource) All() ([]domain.Insight, error) {
	var doc struct {
		Insights []insightEntry `yaml:"insights"`
	}
	if err := yaml.Unmarshal(insightsYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode insight dataset: %w", err)
	}
	out := make([]domain.Insight, len(doc.Insights))
	for i, e := range doc.Insights {
		out[i] = domain.Insight{
			Day: e.Day,
			Verse: domain.Verse{
				Reference:   e.Verse.Reference,
				Arabic:      e.Verse.Arabic,
				Translation: e.Verse.Translation,
			},
			Hadith: domain.Hadith{
				Text:     e.Hadith.Text,
				Narrator: e.Hadith.Narrator,
				Source:   e.Hadith.Source,
			},
			Historical: domain.Historical{
				Title:       e.Historical.Title,
				Description: e.Historical.Description,
			},
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}
