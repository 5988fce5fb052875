package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/rapleeee/face-reading-withAI/internal/middleware"
	appErr "github.com/rapleeee/face-reading-withAI/internal/pkg/errors"
	"github.com/rapleeee/face-reading-withAI/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	switch {
	case errors.Is(err, appErr.ErrInvalid):
		logger.Info("rejected invalid request", zap.Error(err))
	case errors.Is(err, appErr.ErrNotConfigured):
		logger.Error("analysis unavailable", zap.Error(err))
	default:
		logger.Error("request failed", zap.Error(err))
	}
	response.Fail(c, err)
}
