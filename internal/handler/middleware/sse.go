package middleware

import "github.com/gin-gonic/gin"

// EventStream prepares the response for server-sent events behind proxies.
func EventStream() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
	}
}
