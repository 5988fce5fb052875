package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rapleeee/face-reading-withAI/internal/insight"
	"github.com/rapleeee/face-reading-withAI/internal/pkg/response"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type trackItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Note string `json:"note"`
}

func (h *MetaHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *MetaHandler) Tracks(c *gin.Context) {
	tracks := insight.Tracks()
	items := make([]trackItem, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, trackItem{Code: t.Code, Name: t.Name, Note: t.Note})
	}
	response.Success(c, http.StatusOK, gin.H{"tracks": items, "default": insight.DefaultTrackCode})
}
