package insight

import "github.com/rapleeee/face-reading-withAI/internal/model"

// Draft is the structured narrative produced by the generator or by a fallback template,
// before normalization.
type Draft struct {
	Energy             string                   `json:"energy"`
	Personality        string                   `json:"personality"`
	Career             []model.ManifestingPoint `json:"career"`
	Future             []model.ManifestingPoint `json:"future"`
	Recommendation     DraftRecommendation      `json:"recommendation"`
	ConfidenceModifier float64                  `json:"confidenceModifier"`
}

type DraftRecommendation struct {
	Primary      string             `json:"primary"`
	Reasoning    []string           `json:"reasoning"`
	Focus        string             `json:"focus"`
	Habits       []string           `json:"habits"`
	Alternatives []DraftAlternative `json:"alternatives"`
}

type DraftAlternative struct {
	Code string `json:"code"`
	Note string `json:"note"`
}
