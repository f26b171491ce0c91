package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/types"
	"golang.org/x/time/rate"
)

const (
	rateLimitPerSecond = 20
	rateLimitBurst     = 40
)

// RateLimitMiddleware applies a token-bucket limit per tenant. Unauthenticated
// requests fall back to a shared bucket keyed by client IP.
func RateLimitMiddleware() gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	getLimiter := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[key]; ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(rateLimitPerSecond), rateLimitBurst)
		limiters[key] = l
		return l
	}

	return func(c *gin.Context) {
		key := types.GetTenantID(c.Request.Context())
		if key == "" {
			key = c.ClientIP()
		}

		if !getLimiter(key).Allow() {
			err := ierr.NewError("rate limit exceeded").
				WithHint("Too many requests, slow down").
				Mark(ierr.ErrInvalidOperation)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ierr.NewErrorResponse(err))
			return
		}
		c.Next()
	}
}
