package middleware

import (
	"net/http"
	"sync"
	"time"

	"bank-core/internal/config"

	"github.com/gin-gonic/gin"
)

type rateLimiter struct {
	requests map[string][]time.Time
	mutex    sync.RWMutex
	limit    int
	window   time.Duration
}

// RateLimit bounds each client IP to cfg.RateLimit.RequestsPerMinute
// requests per window. This is an ambient transport-level guard,
// independent of and layered above the per-user Gatekeeper.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	limiter := &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    cfg.RateLimit.RequestsPerMinute,
		window:   cfg.RateLimit.Window,
	}
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		limiter.mutex.Lock()
		defer limiter.mutex.Unlock()

		now := time.Now()

		if requests, exists := limiter.requests[clientIP]; exists {
			var validRequests []time.Time
			for _, reqTime := range requests {
				if now.Sub(reqTime) < limiter.window {
					validRequests = append(validRequests, reqTime)
				}
			}
			limiter.requests[clientIP] = validRequests
		}

		if len(limiter.requests[clientIP]) >= limiter.limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded, try again later",
				"retry_after": int(limiter.window.Seconds()),
			})
			c.Abort()
			return
		}

		limiter.requests[clientIP] = append(limiter.requests[clientIP], now)

		c.Next()
	}
}
