package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rapleeee/face-reading-withAI/internal/ai"
	"github.com/rapleeee/face-reading-withAI/internal/analysiscache"
	"github.com/rapleeee/face-reading-withAI/internal/classifier"
	"github.com/rapleeee/face-reading-withAI/internal/insight"
	"github.com/rapleeee/face-reading-withAI/internal/model"
	appErr "github.com/rapleeee/face-reading-withAI/internal/pkg/errors"
)

const (
	ReasonGeneratorFailed = "generator_failed"
	ReasonAgePreset       = "age_preset"
)

type INarrator interface {
	Name() string
	Generate(ctx context.Context, in ai.NarrativeInput) (*insight.Draft, error)
}

type AnalysisDeps struct {
	Expression classifier.IExpressionClassifier
	Age        classifier.IAgeClassifier
	Narrator   INarrator
	Cache      analysiscache.Store
	// Configured is false when classifier or generator credentials are missing.
	Configured bool
}

type AnalysisService struct {
	expression classifier.IExpressionClassifier
	age        classifier.IAgeClassifier
	narrator   INarrator
	cache      analysiscache.Store
	configured bool
	now        func() time.Time
}

func NewAnalysisService(deps AnalysisDeps) *AnalysisService {
	return &AnalysisService{
		expression: deps.Expression,
		age:        deps.Age,
		narrator:   deps.Narrator,
		cache:      deps.Cache,
		configured: deps.Configured,
		now:        time.Now,
	}
}

// Analyze turns a data-URL image into an analysis document. Only invalid input and missing
// credentials fail; upstream problems degrade to defaults and templates.
func (s *AnalysisService) Analyze(ctx context.Context, image string) (*model.AnalysisPayload, error) {
	img, err := decodeDataURL(image)
	if err != nil {
		return nil, err
	}
	if !s.configured {
		return nil, fmt.Errorf("upstream credentials missing: %w", appErr.ErrNotConfigured)
	}
	if s.expression == nil || s.age == nil || s.narrator == nil {
		return nil, fmt.Errorf("analysis pipeline incomplete: %w", appErr.ErrInternal)
	}
	key := analysiscache.Key(img.Bytes)
	logger := logutil.GetLogger(ctx).With(zap.String("image_hash", key[:16]), zap.Int("image_size", len(img.Bytes)))

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			cached.Meta.Cached = true
			cached.GeneratedAt = s.timestamp()
			logger.Debug("analysis served from cache")
			return cached, nil
		}
	}

	payload := s.analyze(ctx, logger, img, key)
	payload.GeneratedAt = s.timestamp()
	if s.cache != nil {
		s.cache.Put(ctx, key, payload)
	}
	return payload, nil
}

func (s *AnalysisService) analyze(ctx context.Context, logger *zap.Logger, img *decodedImage, key string) *model.AnalysisPayload {
	var (
		expr   model.ExpressionInsight
		ageSig insight.AgeSignal
		g      errgroup.Group
	)
	g.Go(func() error {
		expr = s.expression.ClassifyExpression(ctx, img.Bytes, img.MIME)
		return nil
	})
	g.Go(func() error {
		ageSig = s.age.ClassifyAge(ctx, img.Bytes, img.MIME)
		return nil
	})
	_ = g.Wait()

	age, usedPreset := insight.BuildAgeInsight(ageSig, expr.Label)
	if usedPreset {
		logger.Warn("age signal unusable, using preset",
			zap.String("reason", ReasonAgePreset),
			zap.String("age_label", ageSig.Label),
		)
	}

	source := model.SourceAI
	draft, err := s.narrator.Generate(ctx, ai.NarrativeInput{
		Expression: expr,
		Age:        &age,
		ImageHash:  key,
	})
	if err != nil {
		logger.Warn("narrative generation failed, using fallback template",
			zap.String("reason", ReasonGeneratorFailed),
			zap.String("expression", expr.Label),
			zap.Error(err),
		)
		fallback := insight.BuildFallbackAnalysis(expr.Label)
		draft = &fallback
		source = model.SourceFallback
	}

	payload := insight.Normalize(draft, expr, &age, source)
	if source == model.SourceAI {
		payload.Meta.Provider = s.narrator.Name()
	}
	logger.Info("analysis built",
		zap.String("source", source),
		zap.String("expression", expr.Label),
		zap.String("primary_track", payload.Recommendation.Primary.Code),
	)
	return payload
}

func (s *AnalysisService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
