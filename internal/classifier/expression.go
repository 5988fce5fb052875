package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/rapleeee/face-reading-withAI/internal/insight"
	"github.com/rapleeee/face-reading-withAI/internal/model"
)

const ReasonExpressionDefault = "expression_default"

type IExpressionClassifier interface {
	ClassifyExpression(ctx context.Context, image []byte, mime string) model.ExpressionInsight
}

type ExpressionClassifier struct {
	ep endpoint
}

func NewExpressionClassifier(cfg Config) *ExpressionClassifier {
	return &ExpressionClassifier{ep: newEndpoint(cfg)}
}

// ClassifyExpression never fails: any upstream problem degrades to insight.DefaultExpression.
func (c *ExpressionClassifier) ClassifyExpression(ctx context.Context, image []byte, mime string) model.ExpressionInsight {
	logger := logutil.GetLogger(ctx)
	body, err := c.ep.post(ctx, image, mime)
	if err != nil {
		logger.Warn("expression classification failed", zap.String("reason", ReasonExpressionDefault), zap.Error(err))
		return insight.DefaultExpression()
	}
	top, err := parseExpressionResponse(body)
	if err != nil {
		logger.Warn("expression response unusable", zap.String("reason", ReasonExpressionDefault), zap.Error(err))
		return insight.DefaultExpression()
	}
	return insight.NewExpressionInsight(top.Label, top.Score)
}

func parseExpressionResponse(body []byte) (labelScore, error) {
	candidates, err := decodeCandidates(body)
	if err != nil {
		return labelScore{}, err
	}
	return topCandidate(candidates)
}

// decodeCandidates accepts a flat [{label, score}] array or the nested [[...]] form some
// inference endpoints return for single inputs.
func decodeCandidates(body []byte) ([]labelScore, error) {
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	if len(nested) == 0 {
		return nil, nil
	}
	return nested[0], nil
}

// topCandidate picks the highest score; equal scores keep first-seen order.
func topCandidate(candidates []labelScore) (labelScore, error) {
	valid := make([]labelScore, 0, len(candidates))
	for _, c := range candidates {
		if c.Label == "" {
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return labelScore{}, fmt.Errorf("no candidates")
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Score > valid[j].Score
	})
	return valid[0], nil
}
