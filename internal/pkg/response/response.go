package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rapleeee/face-reading-withAI/internal/pkg/errcode"
	appErr "github.com/rapleeee/face-reading-withAI/internal/pkg/errors"
)

const NotConfiguredMessage = "analysis service is not configured"

type errorBody struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Error(c *gin.Context, status int, code int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Code: uint32(code), Message: message})
}

// Fail maps a sentinel from pkg/errors to its status and error code. Unknown errors become ErrInternal.
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appErr.ErrInvalid):
		Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request: image must be a base64 data url")
	case errors.Is(err, appErr.ErrTooMany):
		Error(c, http.StatusTooManyRequests, errcode.ErrTooMany, "too many requests, please retry later")
	case errors.Is(err, appErr.ErrNotConfigured):
		Error(c, http.StatusInternalServerError, errcode.ErrNotConfigured, NotConfiguredMessage)
	default:
		Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}
