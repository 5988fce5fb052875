package handler_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/rapleeee/face-reading-withAI/internal/ai"
	"github.com/rapleeee/face-reading-withAI/internal/analysiscache"
	"github.com/rapleeee/face-reading-withAI/internal/handler"
	"github.com/rapleeee/face-reading-withAI/internal/insight"
	"github.com/rapleeee/face-reading-withAI/internal/middleware"
	"github.com/rapleeee/face-reading-withAI/internal/model"
	"github.com/rapleeee/face-reading-withAI/internal/ratelimit"
	"github.com/rapleeee/face-reading-withAI/internal/service"
)

type upstreamCounter struct {
	calls atomic.Int32
}

func (u *upstreamCounter) ClassifyExpression(ctx context.Context, image []byte, mime string) model.ExpressionInsight {
	u.calls.Add(1)
	return insight.NewExpressionInsight("surprise", 0.76)
}

func (u *upstreamCounter) ClassifyAge(ctx context.Context, image []byte, mime string) insight.AgeSignal {
	u.calls.Add(1)
	return insight.AgeSignal{Label: "20-29", Score: 0.6}
}

type failingNarrator struct{}

func (failingNarrator) Name() string { return "none" }

func (failingNarrator) Generate(ctx context.Context, in ai.NarrativeInput) (*insight.Draft, error) {
	return nil, errors.New("generator offline")
}

type routerOptions struct {
	configured   bool
	maxPerWindow int
	maxBodyBytes int64
}

func setupRouter(t *testing.T, opts routerOptions) (http.Handler, *upstreamCounter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := &upstreamCounter{}
	svc := service.NewAnalysisService(service.AnalysisDeps{
		Expression: upstream,
		Age:        upstream,
		Narrator:   failingNarrator{},
		Cache:      analysiscache.NewMemoryStore(10*time.Minute, nil),
		Configured: opts.configured,
	})
	if opts.maxPerWindow == 0 {
		opts.maxPerWindow = ratelimit.DefaultMax
	}
	if opts.maxBodyBytes == 0 {
		opts.maxBodyBytes = 8 << 20
	}
	deps := handler.RouterDeps{
		Analyze: handler.NewAnalyzeHandler(svc, opts.maxBodyBytes),
		Meta:    handler.NewMetaHandler(),
		Limiter: ratelimit.NewSlidingWindow(time.Minute, opts.maxPerWindow),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine, upstream
}
