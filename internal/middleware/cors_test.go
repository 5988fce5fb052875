package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil)
	c.Request.Header.Set("Origin", "https://app.example.com")
	CORS([]string{" https://app.example.com "})(c)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Retry-After")

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
	c.Request.Header.Set("Origin", "https://evil.example.com")
	CORS([]string{"https://app.example.com"})(c)
	require.False(t, c.IsAborted())
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/tracks", nil)
	CORS(nil)(c)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
