package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an id so API log lines can be
// correlated. An incoming X-Request-ID is honored.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// CustomLoggerMiddleware creates a custom logging middleware that logs HTTP requests in simple text format
func CustomLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()

		// Process request
		c.Next()

		// End timer
		end := time.Now()
		latency := end.Sub(start)

		// Get user ID from context if available
		userID := uint(0)
		if id, exists := c.Get("user_id"); exists {
			if v, ok := id.(uint); ok {
				userID = v
			}
		}

		requestID := c.GetString("request_id")

		// Log the request in simple text format
		fmt.Printf("[API] %s | %s | %d | %s | %s | User: %d | Req: %s\n",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency.String(),
			c.ClientIP(),
			userID,
			requestID,
		)
	}
}
