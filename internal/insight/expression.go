package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

const (
	ExpressionUnknown = "unknown"

	defaultExpressionConfidence = 0.35
	defaultExpressionNarrative  = "Your expression is hard to read in this snapshot, so the reading leans on balanced, general traits."
)

var expressionAliases = map[string]string{
	"happy":     "happy",
	"happiness": "happy",
	"joy":       "happy",
	"sad":       "sad",
	"sadness":   "sad",
	"angry":     "angry",
	"anger":     "angry",
	"fear":      "fear",
	"fearful":   "fear",
	"surprise":  "surprise",
	"surprised": "surprise",
	"disgust":   "disgust",
	"disgusted": "disgust",
	"contempt":  "disgust",
	"neutral":   "neutral",
	"calm":      "neutral",
}

var expressionNarratives = map[string]string{
	"happy":    "Your face radiates warmth and optimism; people likely find you easy to approach.",
	"sad":      "Your expression carries a reflective, quiet depth that hints at strong empathy.",
	"angry":    "Your expression shows intensity and drive; you push hard for what matters to you.",
	"fear":     "Your expression suggests alertness and caution; you notice risks others miss.",
	"surprise": "Your expression is open and curious; new ideas clearly catch your attention.",
	"disgust":  "Your expression signals sharp judgement and high standards for what you accept.",
	"neutral":  "Your expression is calm and composed, a sign of steady focus and self-control.",
}

// expressionTrackHints ranks tracks that tend to suit each expression. The ranking only steers the
// narrative generator; it never constrains the final recommendation.
var expressionTrackHints = map[string][]string{
	"happy":    {"business", "social", "creative"},
	"sad":      {"social", "creative", "health"},
	"angry":    {"business", "stem", "social"},
	"fear":     {"health", "stem", "social"},
	"surprise": {"creative", "stem", "business"},
	"disgust":  {"stem", "health", "business"},
	"neutral":  {"stem", "business", "health"},
}

// CanonicalExpression folds a classifier label onto the expression enumeration.
// Unrecognized labels return ExpressionUnknown.
func CanonicalExpression(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if c, ok := expressionAliases[key]; ok {
		return c
	}
	return ExpressionUnknown
}

func ExpressionNarrative(label string, confidence float64) string {
	if text, ok := expressionNarratives[CanonicalExpression(label)]; ok {
		return text
	}
	raw := strings.TrimSpace(label)
	if raw == "" {
		return defaultExpressionNarrative
	}
	return fmt.Sprintf("Your expression reads as %q with about %d%% confidence; the reading adapts to that mood.",
		raw, int(math.Round(Clamp01(confidence)*100)))
}

func NewExpressionInsight(label string, confidence float64) model.ExpressionInsight {
	lowered := strings.ToLower(strings.TrimSpace(label))
	if lowered == "" {
		return DefaultExpression()
	}
	conf := Clamp01(confidence)
	return model.ExpressionInsight{
		Label:      lowered,
		Confidence: conf,
		Narrative:  ExpressionNarrative(lowered, conf),
	}
}

func DefaultExpression() model.ExpressionInsight {
	return model.ExpressionInsight{
		Label:      ExpressionUnknown,
		Confidence: defaultExpressionConfidence,
		Narrative:  defaultExpressionNarrative,
	}
}

func TrackHints(label string) []string {
	hints, ok := expressionTrackHints[CanonicalExpression(label)]
	if !ok {
		return []string{DefaultTrackCode, "social", "business"}
	}
	out := make([]string, len(hints))
	copy(out, hints)
	return out
}

func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
