package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
)

// SSEMiddleware sets the event-stream headers and keeps the connection
// alive with comment lines while the handler streams.
func SSEMiddleware(workerPool outbound.TaskDispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		clientGone := c.Request.Context().Done()

		err := workerPool.Submit(func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
						return
					}
					c.Writer.Flush()
				case <-clientGone:
					return
				}
			}
		})
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
			return
		}

		c.Next()
	}
}
