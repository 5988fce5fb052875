package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rapleeee/face-reading-withAI/internal/middleware"
	"github.com/rapleeee/face-reading-withAI/internal/ratelimit"
)

type RouterDeps struct {
	Analyze *AnalyzeHandler
	Meta    *MetaHandler
	Limiter ratelimit.Limiter
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/healthz", deps.Meta.Health)
	api.GET("/tracks", deps.Meta.Tracks)

	limited := api.Group("")
	limited.Use(middleware.RateLimit(deps.Limiter))
	limited.POST("/analyze", deps.Analyze.Analyze)
}
