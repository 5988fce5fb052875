package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/rapleeee/face-reading-withAI/internal/insight"
)

const ReasonAgeUnavailable = "age_unavailable"

// directAgeDefaultScore is reported when a numeric age arrives without a score.
const directAgeDefaultScore = 0.5

type IAgeClassifier interface {
	ClassifyAge(ctx context.Context, image []byte, mime string) insight.AgeSignal
}

type AgeClassifier struct {
	ep endpoint
}

func NewAgeClassifier(cfg Config) *AgeClassifier {
	return &AgeClassifier{ep: newEndpoint(cfg)}
}

// ClassifyAge never fails. An empty signal is returned on any upstream problem, which
// insight.BuildAgeInsight turns into the expression-keyed preset.
func (c *AgeClassifier) ClassifyAge(ctx context.Context, image []byte, mime string) insight.AgeSignal {
	logger := logutil.GetLogger(ctx)
	body, err := c.ep.post(ctx, image, mime)
	if err != nil {
		logger.Warn("age classification failed", zap.String("reason", ReasonAgeUnavailable), zap.Error(err))
		return insight.AgeSignal{}
	}
	resp, err := decodeAgeResponse(body)
	if err != nil {
		logger.Warn("age response unusable", zap.String("reason", ReasonAgeUnavailable), zap.Error(err))
		return insight.AgeSignal{}
	}
	logger.Debug("age response decoded", zap.Stringer("shape", resp.shape))
	return resp.signal()
}

type ageShape int

const (
	ageShapeCandidates ageShape = iota + 1
	ageShapeWrapped
	ageShapeDirect
	ageShapeLabel
)

func (s ageShape) String() string {
	switch s {
	case ageShapeCandidates:
		return "candidates"
	case ageShapeWrapped:
		return "wrapped"
	case ageShapeDirect:
		return "direct"
	case ageShapeLabel:
		return "label"
	}
	return "unknown"
}

// ageResponse is one of the known age classifier response shapes.
type ageResponse struct {
	shape      ageShape
	candidates []labelScore
	age        float64
	label      string
	score      float64
}

type ageObject struct {
	AgePredictions []labelScore `json:"age_predictions"`
	Age            *float64     `json:"age"`
	Label          *string      `json:"label"`
	Score          *float64     `json:"score"`
}

func decodeAgeResponse(body []byte) (ageResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ageResponse{}, fmt.Errorf("empty age response")
	}
	if trimmed[0] == '[' {
		candidates, err := decodeCandidates(trimmed)
		if err != nil {
			return ageResponse{}, err
		}
		return ageResponse{shape: ageShapeCandidates, candidates: candidates}, nil
	}
	var obj ageObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return ageResponse{}, fmt.Errorf("decode age response: %w", err)
	}
	var score float64
	if obj.Score != nil {
		score = *obj.Score
	}
	var label string
	if obj.Label != nil {
		label = *obj.Label
	}
	switch {
	case obj.AgePredictions != nil:
		return ageResponse{shape: ageShapeWrapped, candidates: obj.AgePredictions}, nil
	case obj.Age != nil:
		if obj.Score == nil {
			score = directAgeDefaultScore
		}
		return ageResponse{shape: ageShapeDirect, age: *obj.Age, label: label, score: score}, nil
	case obj.Label != nil:
		return ageResponse{shape: ageShapeLabel, label: label, score: score}, nil
	}
	return ageResponse{}, fmt.Errorf("unrecognized age response shape")
}

func (r ageResponse) signal() insight.AgeSignal {
	switch r.shape {
	case ageShapeCandidates, ageShapeWrapped:
		return signalFromCandidates(r.candidates)
	case ageShapeDirect:
		return signalFromDirect(r.age, r.label, r.score)
	case ageShapeLabel:
		return insight.AgeSignal{Label: r.label, Score: r.score}
	}
	return insight.AgeSignal{}
}

func signalFromCandidates(candidates []labelScore) insight.AgeSignal {
	top, err := topCandidate(candidates)
	if err != nil {
		return insight.AgeSignal{}
	}
	return insight.AgeSignal{Label: top.Label, Score: top.Score}
}

func signalFromDirect(age float64, label string, score float64) insight.AgeSignal {
	return insight.AgeSignal{Label: label, Score: score, DirectAge: &age}
}
