package middleware

import (
	"time"

	"bootfeed/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger emits one line per request through the shared logger, so HTTP
// traffic and import progress end up in the same stream.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("%s %s %d %s %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
