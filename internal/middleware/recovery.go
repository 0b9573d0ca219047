package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fittrack/api/internal/api"
)

// Recovery turns a handler panic into the generic 500 envelope.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			event := log.Error().
				Interface("panic", r).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Str("request_id", RequestIDFrom(c)).
				Bytes("stack", debug.Stack())
			if req := CurrentRequester(c); req.Authenticated() {
				event = event.Str("user_id", req.ID())
			}
			event.Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Envelope[any]{Message: "Server error"})
		}()
		c.Next()
	}
}
