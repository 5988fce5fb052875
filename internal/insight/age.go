package insight

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rapleeee/face-reading-withAI/internal/model"
)

var (
	ageNumberPattern   = regexp.MustCompile(`\d+`)
	ageOpenEndPattern  = regexp.MustCompile(`(\d+)\s*\+`)
	ageOpenWordPattern = regexp.MustCompile(`(?i)\b(over|above|more than|older than)\s*(\d+)`)
)

// AgeSignal is what an age classifier produced once its response shape has been normalized.
type AgeSignal struct {
	Label     string
	Score     float64
	DirectAge *float64
}

// ParseAgeRange extracts numeric bounds from a classifier label such as "25-32", "60+" or "(38, 43)".
// ok is false when no bound could be extracted.
func ParseAgeRange(label string) (rng model.AgeRange, estimated *int, ok bool) {
	if m := ageOpenEndPattern.FindStringSubmatch(label); m != nil {
		return openRange(m[1])
	}
	if m := ageOpenWordPattern.FindStringSubmatch(label); m != nil {
		return openRange(m[2])
	}
	nums := ageNumberPattern.FindAllString(label, -1)
	switch len(nums) {
	case 0:
		return model.AgeRange{}, nil, false
	case 1:
		n, err := strconv.Atoi(nums[0])
		if err != nil {
			return model.AgeRange{}, nil, false
		}
		return model.AgeRange{Min: intPtr(n), Max: intPtr(n)}, intPtr(n), true
	}
	a, errA := strconv.Atoi(nums[0])
	b, errB := strconv.Atoi(nums[1])
	if errA != nil || errB != nil {
		return model.AgeRange{}, nil, false
	}
	lo, hi := min(a, b), max(a, b)
	mid := int(math.Round(float64(lo+hi) / 2))
	return model.AgeRange{Min: intPtr(lo), Max: intPtr(hi)}, intPtr(mid), true
}

func openRange(digits string) (model.AgeRange, *int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return model.AgeRange{}, nil, false
	}
	return model.AgeRange{Min: intPtr(n)}, intPtr(n), true
}

// BuildAgeInsight turns a classifier signal into an AgeInsight. When neither the label nor a direct
// numeric age is usable it returns the preset for the expression label, and usedPreset is true.
func BuildAgeInsight(sig AgeSignal, expressionLabel string) (insight model.AgeInsight, usedPreset bool) {
	label := strings.TrimSpace(sig.Label)
	rng, estimated, ok := ParseAgeRange(label)
	if !ok && sig.DirectAge != nil && !math.IsNaN(*sig.DirectAge) && *sig.DirectAge > 0 {
		estimated = intPtr(int(math.Round(*sig.DirectAge)))
		rng = model.AgeRange{}
		ok = true
		if label == "" {
			label = strconv.Itoa(*estimated)
		}
	}
	if !ok {
		return AgePreset(expressionLabel), true
	}
	return model.AgeInsight{
		Label:      label,
		Confidence: Clamp01(sig.Score),
		Estimated:  estimated,
		Range:      rng,
		Headline:   ageHeadline(rng, estimated),
		Narrative:  LifeStage(estimated),
		Source:     model.AgeSourceClassifier,
	}, false
}

func ageHeadline(rng model.AgeRange, estimated *int) string {
	switch {
	case rng.Min != nil && rng.Max != nil && *rng.Min != *rng.Max:
		return fmt.Sprintf("Estimated age %d-%d", *rng.Min, *rng.Max)
	case rng.Min != nil && rng.Max == nil:
		return fmt.Sprintf("Estimated age %d+", *rng.Min)
	case estimated != nil:
		return fmt.Sprintf("Estimated age around %d", *estimated)
	}
	return "Age could not be estimated"
}

// LifeStage describes the study/career stage for an estimated age.
func LifeStage(estimated *int) string {
	if estimated == nil {
		return "Every stage of life is a good moment to shape the next step of your path."
	}
	switch age := *estimated; {
	case age < 13:
		return "Childhood: a time to explore widely and discover what sparks curiosity."
	case age < 18:
		return "Secondary school years: choosing subjects now lays the groundwork for a future major."
	case age < 23:
		return "University age: the right major and first experiences will set your direction."
	case age < 30:
		return "Early career: experiments and first jobs are shaping your professional identity."
	case age < 45:
		return "Established career: depth and leadership matter more than new beginnings."
	case age < 60:
		return "Mature career: mentoring others and refining your legacy become priorities."
	default:
		return "Wisdom years: experience becomes your greatest asset for guiding others."
	}
}

type agePreset struct {
	label     string
	estimated int
	min       int
	max       int
	headline  string
}

const agePresetConfidence = 0.3

var agePresets = map[string]agePreset{
	"happy":    {label: "20-29", estimated: 24, min: 20, max: 29, headline: "Youthful, energetic look"},
	"sad":      {label: "25-34", estimated: 29, min: 25, max: 34, headline: "Thoughtful, mature look"},
	"angry":    {label: "25-34", estimated: 30, min: 25, max: 34, headline: "Determined, driven look"},
	"fear":     {label: "18-24", estimated: 21, min: 18, max: 24, headline: "Alert, young look"},
	"surprise": {label: "18-24", estimated: 20, min: 18, max: 24, headline: "Fresh, curious look"},
	"disgust":  {label: "30-39", estimated: 34, min: 30, max: 39, headline: "Discerning, experienced look"},
	"neutral":  {label: "20-29", estimated: 25, min: 20, max: 29, headline: "Calm, composed look"},
}

var defaultAgePreset = agePreset{label: "20-29", estimated: 25, min: 20, max: 29, headline: "Balanced look"}

// AgePreset is the deterministic age insight used when the age classifier gives nothing usable.
func AgePreset(expressionLabel string) model.AgeInsight {
	p, ok := agePresets[CanonicalExpression(expressionLabel)]
	if !ok {
		p = defaultAgePreset
	}
	est := intPtr(p.estimated)
	return model.AgeInsight{
		Label:      p.label,
		Confidence: agePresetConfidence,
		Estimated:  est,
		Range:      model.AgeRange{Min: intPtr(p.min), Max: intPtr(p.max)},
		Headline:   p.headline,
		Narrative:  LifeStage(est),
		Source:     model.AgeSourcePreset,
	}
}

func intPtr(v int) *int {
	return &v
}
