package middleware

import (
	"time"

	"hallbook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with latency and status through the
// structured logger
func RequestLogger() gin.HandlerFunc {
	log := logger.GetDefault()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}

// Recovery converts panics into JSON 500s instead of gin's default plain text
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.GetDefault().ErrorContext(c.Request.Context(),
			"panic recovered",
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(500, gin.H{
			"status":      "error",
			"status_code": 500,
			"message":     "Internal server error",
		})
	})
}
