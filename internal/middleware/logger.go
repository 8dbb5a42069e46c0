package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request: status, method, full URL, client
// IP, response size and duration. Errors attached to the context by handlers
// are appended to the line.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		url := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			url += "?" + q
		}

		line := fmt.Sprintf("[HTTP] %d %s %s from=%s bytes=%d in=%s",
			c.Writer.Status(), c.Request.Method, url, c.ClientIP(),
			c.Writer.Size(), time.Since(start).Round(time.Microsecond))
		if len(c.Errors) > 0 {
			line += " errors=" + c.Errors.String()
		}
		log.Print(line)
	}
}
