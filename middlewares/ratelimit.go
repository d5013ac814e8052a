package middlewares

import (
	"log"
	"net/http"
	"strconv"

	"edumaster/internal/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware caps how many requests a client IP may start under
// scope. Redis errors let the request through.
func RateLimitMiddleware(rl *limiter.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Enabled() {
			c.Next()
			return
		}

		allowed, err := rl.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			log.Printf("Rate limiter error for %s: %v", scope, err)
			c.Next()
			return
		}
		if !allowed {
			if remaining, err := rl.Remaining(c.Request.Context(), scope, c.ClientIP()); err == nil {
				c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			}
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many AI requests, please wait a moment"})
			c.Abort()
			return
		}
		c.Next()
	}
}
