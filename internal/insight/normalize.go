package insight

import (
	"math"
	"strings"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

const maxPointsPerList = 5

// Normalize merges a draft with defaults into the final response document. It never fails: missing or
// invalid parts of the draft are replaced by the fallback template for the expression.
func Normalize(draft *Draft, expression model.ExpressionInsight, age *model.AgeInsight, source string) *model.AnalysisPayload {
	fallback := BuildFallbackAnalysis(expression.Label)
	if draft == nil {
		draft = &fallback
	}

	career := filterPoints(draft.Career)
	if len(career) == 0 {
		career = filterPoints(fallback.Career)
	}
	future := filterPoints(draft.Future)
	if len(future) == 0 {
		future = filterPoints(fallback.Future)
	}

	modifier := draft.ConfidenceModifier
	if math.IsNaN(modifier) || math.IsInf(modifier, 0) {
		modifier = 0
	}

	out := &model.AnalysisPayload{
		Expression: expression,
		Summary: model.Summary{
			Energy:      firstNonEmpty(draft.Energy, fallback.Energy),
			Personality: firstNonEmpty(draft.Personality, fallback.Personality),
		},
		Career:         career,
		Future:         future,
		Recommendation: normalizeRecommendation(draft.Recommendation),
		Confidence:     Clamp01(expression.Confidence + modifier),
		Meta:           model.Meta{Source: source},
	}
	if age != nil {
		a := *age
		out.Age = &a
	}
	return out
}

func filterPoints(points []model.ManifestingPoint) []model.ManifestingPoint {
	out := make([]model.ManifestingPoint, 0, len(points))
	for _, p := range points {
		title := strings.TrimSpace(p.Title)
		desc := strings.TrimSpace(p.Description)
		if title == "" || desc == "" {
			continue
		}
		out = append(out, model.ManifestingPoint{
			Title:       title,
			Description: desc,
			Indicator:   normalizeIndicator(p.Indicator),
		})
		if len(out) == maxPointsPerList {
			break
		}
	}
	return out
}

func normalizeIndicator(v string) string {
	switch s := strings.ToLower(strings.TrimSpace(v)); s {
	case model.IndicatorStrength, model.IndicatorOpportunity, model.IndicatorWarning:
		return s
	}
	return model.IndicatorOpportunity
}

func normalizeRecommendation(rec DraftRecommendation) model.Recommendation {
	primaryCode := ResolveTrackCode(rec.Primary)
	primary, _ := LookupTrack(primaryCode)

	reasoning := nonEmptyStrings(rec.Reasoning)
	if len(reasoning) == 0 {
		reasoning = append([]string(nil), primary.Reasoning...)
	}
	habits := nonEmptyStrings(rec.Habits)
	if len(habits) == 0 {
		habits = append([]string(nil), primary.Habits...)
	}

	seen := map[string]bool{primaryCode: true}
	alternatives := make([]model.TrackAlternative, 0, len(tracks)-1)
	for _, alt := range rec.Alternatives {
		t, ok := LookupTrack(alt.Code)
		if !ok || seen[t.Code] {
			continue
		}
		seen[t.Code] = true
		alternatives = append(alternatives, model.TrackAlternative{
			Code: t.Code,
			Name: t.Name,
			Note: firstNonEmpty(alt.Note, t.Note),
		})
	}
	for _, t := range tracks {
		if seen[t.Code] {
			continue
		}
		seen[t.Code] = true
		alternatives = append(alternatives, model.TrackAlternative{Code: t.Code, Name: t.Name, Note: t.Note})
	}

	return model.Recommendation{
		Primary: model.TrackRecommendation{
			Code:      primary.Code,
			Name:      primary.Name,
			Reasoning: reasoning,
			Focus:     firstNonEmpty(rec.Focus, primary.Focus),
			Habits:    habits,
		},
		Alternatives: alternatives,
	}
}

func nonEmptyStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
