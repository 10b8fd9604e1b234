package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger writes one structured line per request at debug level, and
// at warn/error level for 4xx/5xx responses.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}

	status := c.Writer.Status()
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "errors", c.Errors.String())
	}
	switch {
	case status >= 500:
		h.log.Errorw("http_request", fields...)
	case status >= 400:
		h.log.Warnw("http_request", fields...)
	default:
		h.log.Debugw("http_request", fields...)
	}
}
