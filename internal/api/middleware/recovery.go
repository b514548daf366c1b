package middleware

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"bootfeed/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into 500s. A client that hung up mid-response is not
// a server fault and is dropped without logging a stack.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isClientDisconnect(recovered) {
			c.Abort()
			return
		}

		log.Error("panic on %s %s: %v\n%s",
			c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

func isClientDisconnect(recovered interface{}) bool {
	ne, ok := recovered.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
