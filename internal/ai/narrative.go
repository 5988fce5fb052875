package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rapleeee/face-reading-withAI/internal/insight"
	"github.com/rapleeee/face-reading-withAI/internal/model"
)

const (
	defaultNarrativeTimeout = 45 * time.Second
	defaultMaxTokens        = 1200
	defaultTemperature      = 0.7
	defaultTopP             = 0.9
	defaultLanguage         = "English"
	imageHashPreviewLen     = 32
)

type NarratorConfig struct {
	// Timeout bounds each provider attempt.
	Timeout     time.Duration
	MaxTokens   int
	// Temperature nil selects the default; an explicit zero is kept.
	Temperature *float64
	TopP        float64
	Language    string
}

// NarrativeInput is the classifier context the generator writes about.
type NarrativeInput struct {
	Expression model.ExpressionInsight
	Age        *model.AgeInsight
	ImageHash  string
}

// Narrator builds the prompts, calls the generator and parses its structured answer.
// It performs no fallback; callers substitute insight.BuildFallbackAnalysis on error.
type Narrator struct {
	gen IGenerator
	cfg NarratorConfig
}

func NewNarrator(gen IGenerator, cfg NarratorConfig) *Narrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultNarrativeTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature == nil {
		t := defaultTemperature
		cfg.Temperature = &t
	}
	if cfg.TopP <= 0 {
		cfg.TopP = defaultTopP
	}
	if strings.TrimSpace(cfg.Language) == "" {
		cfg.Language = defaultLanguage
	}
	if gen != nil {
		gen = withAttemptTimeout(gen, cfg.Timeout)
	}
	return &Narrator{gen: gen, cfg: cfg}
}

func (n *Narrator) Name() string {
	if n == nil || n.gen == nil {
		return ""
	}
	return n.gen.Name()
}

func (n *Narrator) Generate(ctx context.Context, in NarrativeInput) (*insight.Draft, error) {
	if n == nil || n.gen == nil {
		return nil, ErrUnavailable
	}
	text, err := n.gen.Generate(ctx, &ChatRequest{
		System:      buildSystemPrompt(n.cfg.Language),
		User:        buildUserPrompt(in),
		MaxTokens:   n.cfg.MaxTokens,
		Temperature: *n.cfg.Temperature,
		TopP:        n.cfg.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("generate narrative: %w", err)
	}
	return parseDraft(text)
}

func buildSystemPrompt(language string) string {
	return fmt.Sprintf(`You are a warm, encouraging career coach who reads facial expressions for fun, motivational guidance.
Write every text field in %s. Never mention that you cannot see the photo and never give medical or psychological diagnoses.

Return ONLY one JSON object, no markdown, no commentary, with exactly this shape:
{
  "energy": "one sentence about the person's energy tone",
  "personality": "one sentence about personality",
  "career": [{"title": "short title", "description": "one or two sentences", "indicator": "strength|opportunity|warning"}],
  "future": [{"title": "short title", "description": "one or two sentences", "indicator": "strength|opportunity|warning"}],
  "recommendation": {
    "primary": "one of: %s",
    "reasoning": ["short reason", "short reason"],
    "focus": "one concrete next step",
    "habits": ["small daily habit", "small weekly habit"],
    "alternatives": [{"code": "one of the other codes", "note": "one sentence"}]
  },
  "confidenceModifier": 0.0
}
Rules:
- "career" and "future" contain exactly 3 items each.
- "alternatives" lists every code except the primary one, once each.
- "confidenceModifier" is a number between -0.2 and 0.2 reflecting how clearly the expression supports the reading.`,
		language, strings.Join(insight.TrackCodes(), ", "))
}

func buildUserPrompt(in NarrativeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Detected expression: %s (confidence %d%%)\n", in.Expression.Label, percent(in.Expression.Confidence))
	fmt.Fprintf(&b, "Expression reading: %s\n", in.Expression.Narrative)
	if in.Age != nil {
		fmt.Fprintf(&b, "Apparent age: %s\n", describeAge(in.Age))
		fmt.Fprintf(&b, "Life stage: %s\n", in.Age.Narrative)
	}
	fmt.Fprintf(&b, "Tracks that often suit this expression (a hint, not a rule): %s\n",
		strings.Join(insight.TrackHints(in.Expression.Label), ", "))
	hash := in.ImageHash
	if len(hash) > imageHashPreviewLen {
		hash = hash[:imageHashPreviewLen]
	}
	if hash != "" {
		fmt.Fprintf(&b, "Snapshot reference: %s\n", hash)
	}
	b.WriteString("\nWrite the career and future manifesting reading now.")
	return b.String()
}

func describeAge(age *model.AgeInsight) string {
	switch {
	case age.Range.Min != nil && age.Range.Max != nil && *age.Range.Min != *age.Range.Max:
		return fmt.Sprintf("%d-%d years", *age.Range.Min, *age.Range.Max)
	case age.Range.Min != nil && age.Range.Max == nil:
		return fmt.Sprintf("%d+ years", *age.Range.Min)
	case age.Estimated != nil:
		return fmt.Sprintf("about %d years", *age.Estimated)
	}
	return "unknown"
}

func percent(v float64) int {
	return int(math.Round(insight.Clamp01(v) * 100))
}

// parseDraft strips markdown fences and decodes the generator output. Anything that is not a
// complete JSON object with at least one manifesting point is rejected.
func parseDraft(output string) (*insight.Draft, error) {
	clean := stripCodeFences(output)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("parse narrative: no json object found")
	}
	clean = clean[start : end+1]

	var draft insight.Draft
	if err := json.Unmarshal([]byte(clean), &draft); err != nil {
		return nil, fmt.Errorf("parse narrative: %w", err)
	}
	if len(draft.Career) == 0 && len(draft.Future) == 0 {
		return nil, fmt.Errorf("parse narrative: no manifesting points")
	}
	return &draft, nil
}

// stripCodeFences removes a surrounding ``` fence. The first line after the opening fence is
// dropped only when it is a bare language tag such as "json".
func stripCodeFences(s string) string {
	clean := strings.TrimSpace(s)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}
	clean = strings.TrimPrefix(clean, "```")
	if nl := strings.Index(clean, "\n"); nl >= 0 && isFenceTag(clean[:nl]) {
		clean = clean[nl+1:]
	}
	clean = strings.TrimSpace(clean)
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func isFenceTag(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	return !strings.ContainsAny(line, "{}[]\" \t:")
}
