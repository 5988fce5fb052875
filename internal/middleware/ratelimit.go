package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/rapleeee/face-reading-withAI/internal/pkg/errors"
	"github.com/rapleeee/face-reading-withAI/internal/pkg/response"
	"github.com/rapleeee/face-reading-withAI/internal/ratelimit"
)

const anonymousClient = "anonymous"

type rateLimiter struct {
	limiter ratelimit.Limiter
	now     func() time.Time
}

// RateLimit admits requests through limiter keyed by client address. It runs before the body is read.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	l := &rateLimiter{limiter: limiter, now: time.Now}
	return l.handle
}

func (l *rateLimiter) handle(c *gin.Context) {
	if l.limiter == nil {
		c.Next()
		return
	}
	key := clientKey(c.Request)
	decision := l.limiter.Allow(key, l.now())
	if !decision.Allowed {
		retry := int(math.Ceil(decision.RetryAfter.Seconds()))
		if retry < 1 {
			retry = 1
		}
		logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
			zap.String("client", key),
			zap.String("path", c.Request.URL.Path),
			zap.Int("retry_after", retry),
		)
		c.Header("Retry-After", strconv.Itoa(retry))
		response.Fail(c, fmt.Errorf("client %s: %w", key, appErr.ErrTooMany))
		return
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	c.Next()
}

func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return anonymousClient
}
