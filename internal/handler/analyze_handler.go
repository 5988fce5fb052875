package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rapleeee/face-reading-withAI/internal/model"
	"github.com/rapleeee/face-reading-withAI/internal/pkg/errcode"
	"github.com/rapleeee/face-reading-withAI/internal/pkg/response"
)

type IAnalysisService interface {
	Analyze(ctx context.Context, image string) (*model.AnalysisPayload, error)
}

type AnalyzeHandler struct {
	analysis     IAnalysisService
	maxBodyBytes int64
}

func NewAnalyzeHandler(analysis IAnalysisService, maxBodyBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{analysis: analysis, maxBodyBytes: maxBodyBytes}
}

type analyzeRequest struct {
	Image string `json:"image"`
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "image exceeds "+formatBodyLimit(h.maxBodyBytes))
			return
		}
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.analysis.Analyze(c.Request.Context(), req.Image)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
