package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDKey = "requestID"

// RequestLog tags each request with a UUID and logs method, path, status and
// duration once the handler chain finishes.
func RequestLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

func RequestID(c *gin.Context) (string, bool) {
	value, exists := c.Get(requestIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
