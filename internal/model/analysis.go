package model

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

const (
	AgeSourceClassifier = "classifier"
	AgeSourcePreset     = "preset"
)

const (
	IndicatorStrength    = "strength"
	IndicatorOpportunity = "opportunity"
	IndicatorWarning     = "warning"
)

type ExpressionInsight struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Narrative  string  `json:"narrative"`
}

type AgeRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

type AgeInsight struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Estimated  *int     `json:"estimated"`
	Range      AgeRange `json:"range"`
	Headline   string   `json:"headline"`
	Narrative  string   `json:"narrative"`
	Source     string   `json:"source"`
}

type ManifestingPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Indicator   string `json:"indicator"`
}

type Summary struct {
	Energy      string `json:"energy"`
	Personality string `json:"personality"`
}

type TrackRecommendation struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Reasoning []string `json:"reasoning"`
	Focus     string   `json:"focus"`
	Habits    []string `json:"habits"`
}

type TrackAlternative struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Note string `json:"note"`
}

type Recommendation struct {
	Primary      TrackRecommendation `json:"primary"`
	Alternatives []TrackAlternative  `json:"alternatives"`
}

type Meta struct {
	Source   string `json:"source"`
	Cached   bool   `json:"cached,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// AnalysisPayload is the full response document of one analysis.
type AnalysisPayload struct {
	Expression     ExpressionInsight  `json:"expression"`
	Age            *AgeInsight        `json:"age,omitempty"`
	Summary        Summary            `json:"summary"`
	Career         []ManifestingPoint `json:"career"`
	Future         []ManifestingPoint `json:"future"`
	Recommendation Recommendation     `json:"recommendation"`
	Confidence     float64            `json:"confidence"`
	Meta           Meta               `json:"meta"`
	GeneratedAt    string             `json:"generatedAt"`
}

// Clone returns a deep copy so cached documents never share slices with responses.
func (p *AnalysisPayload) Clone() *AnalysisPayload {
	if p == nil {
		return nil
	}
	out := *p
	if p.Age != nil {
		age := *p.Age
		age.Estimated = cloneInt(p.Age.Estimated)
		age.Range = AgeRange{Min: cloneInt(p.Age.Range.Min), Max: cloneInt(p.Age.Range.Max)}
		out.Age = &age
	}
	out.Career = cloneSlice(p.Career)
	out.Future = cloneSlice(p.Future)
	out.Recommendation.Primary.Reasoning = cloneSlice(p.Recommendation.Primary.Reasoning)
	out.Recommendation.Primary.Habits = cloneSlice(p.Recommendation.Primary.Habits)
	out.Recommendation.Alternatives = cloneSlice(p.Recommendation.Alternatives)
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
