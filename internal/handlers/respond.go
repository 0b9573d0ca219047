package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/api"
	"fittrack/api/internal/middleware"
	"fittrack/api/internal/service"
)

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, api.Envelope[any]{Success: true, Message: message, Data: data})
}

func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, api.ListEnvelope[T]{Success: true, Data: items, Count: len(items)})
}

// deleted is the body of every successful DELETE.
func deleted(c *gin.Context, message string) {
	respond(c, http.StatusOK, message, gin.H{})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// respondError maps service errors onto the envelope. Anything that is not a
// *service.Error is logged and hidden behind a generic 500.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		h.log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.RequestIDFrom(c)).
			Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.Envelope[any]{Message: "Server error"})
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), api.Envelope[any]{Message: svcErr.Message, Data: svcErr.Data})
}

func (h HandlerSet) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.Envelope[any]{Message: "Invalid request body"})
		return false
	}
	return true
}
