package insight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

func requireEveryTrackOnce(t *testing.T, rec model.Recommendation) {
	t.Helper()
	require.Len(t, rec.Alternatives, len(TrackCodes())-1)
	seen := map[string]int{rec.Primary.Code: 1}
	for _, alt := range rec.Alternatives {
		seen[alt.Code]++
		require.NotEmpty(t, alt.Note)
		require.NotEmpty(t, alt.Name)
	}
	for _, code := range TrackCodes() {
		require.Equal(t, 1, seen[code], "track %s", code)
	}
}

func TestBuildFallbackAnalysis_Total(t *testing.T) {
	labels := []string{"happy", "SAD", "anger", "fear", "surprised", "disgust", "neutral", "unknown", "", "??", "contempt"}
	for _, label := range labels {
		draft := BuildFallbackAnalysis(label)
		_, ok := LookupTrack(draft.Recommendation.Primary)
		require.True(t, ok, "label %q", label)
		require.Len(t, draft.Career, 2)
		require.Len(t, draft.Future, 2)
	}
}

func TestBuildFallbackAnalysis_AliasesShareTemplate(t *testing.T) {
	require.Equal(t, BuildFallbackAnalysis("happy"), BuildFallbackAnalysis("Happiness"))
	require.Equal(t, BuildFallbackAnalysis("unknown"), BuildFallbackAnalysis("something-else"))
}

func TestNormalize_FallbackRoundTrip(t *testing.T) {
	for _, label := range []string{"happy", "sad", "angry", "fear", "surprise", "disgust", "neutral", "unknown"} {
		expr := model.ExpressionInsight{Label: label, Confidence: 0.8}
		draft := BuildFallbackAnalysis(label)
		out := Normalize(&draft, expr, nil, model.SourceFallback)
		requireEveryTrackOnce(t, out.Recommendation)
		require.NotEmpty(t, out.Recommendation.Primary.Reasoning)
		require.NotEmpty(t, out.Recommendation.Primary.Habits)
		require.NotEmpty(t, out.Recommendation.Primary.Focus)
		require.Len(t, out.Career, 2)
		require.Len(t, out.Future, 2)
		require.Equal(t, model.SourceFallback, out.Meta.Source)
	}
}

func TestNormalize_FiltersAndDefaults(t *testing.T) {
	draft := &Draft{
		Energy: "  ",
		Career: []model.ManifestingPoint{
			{Title: "", Description: "no title"},
			{Title: "Kept", Description: "has both"},
			{Title: "Bad indicator", Description: "x", Indicator: "MAYBE"},
			{Title: "Warn", Description: "y", Indicator: "Warning"},
		},
		Future: []model.ManifestingPoint{{Title: "only title"}},
		Recommendation: DraftRecommendation{
			Primary: "astrology",
			Alternatives: []DraftAlternative{
				{Code: "stem", Note: "duplicate of primary"},
				{Code: "creative", Note: "custom note"},
				{Code: "creative", Note: "second copy"},
				{Code: "cooking", Note: "not a track"},
			},
		},
		ConfidenceModifier: 0.5,
	}
	expr := model.ExpressionInsight{Label: "neutral", Confidence: 0.7}
	out := Normalize(draft, expr, nil, model.SourceAI)

	require.Len(t, out.Career, 3)
	require.Equal(t, model.IndicatorOpportunity, out.Career[0].Indicator)
	require.Equal(t, model.IndicatorOpportunity, out.Career[1].Indicator)
	require.Equal(t, model.IndicatorWarning, out.Career[2].Indicator)
	require.Equal(t, BuildFallbackAnalysis("neutral").Future, out.Future)
	require.Equal(t, BuildFallbackAnalysis("neutral").Energy, out.Summary.Energy)

	require.Equal(t, DefaultTrackCode, out.Recommendation.Primary.Code)
	requireEveryTrackOnce(t, out.Recommendation)
	require.Equal(t, "creative", out.Recommendation.Alternatives[0].Code)
	require.Equal(t, "custom note", out.Recommendation.Alternatives[0].Note)
	require.Equal(t, 1.0, out.Confidence)
}

func TestNormalize_NilDraftAndClamp(t *testing.T) {
	expr := model.ExpressionInsight{Label: "fear", Confidence: 0.05}
	age := AgePreset("fear")
	out := Normalize(nil, expr, &age, model.SourceFallback)
	require.Equal(t, 0.0, out.Confidence)
	require.Equal(t, "health", out.Recommendation.Primary.Code)
	require.NotNil(t, out.Age)
	require.Equal(t, age.Label, out.Age.Label)
}

func TestExpressionNarrative(t *testing.T) {
	require.Equal(t, expressionNarratives["happy"], ExpressionNarrative("Happiness", 0.9))
	require.Contains(t, ExpressionNarrative("pensive", 0.456), `"pensive"`)
	require.Contains(t, ExpressionNarrative("pensive", 0.456), "46%")
	require.Equal(t, DefaultExpression(), NewExpressionInsight("  ", 0.9))
}
