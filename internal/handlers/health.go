package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/api"
	"fittrack/api/internal/cache"
)

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.backend.Ping(ctx); err != nil {
		dbStatus = "error"
		h.log.Error().Err(err).Str("driver", h.backend.Name()).Msg("database ping failed")
	}

	cacheStatus, err := cache.Status(ctx, h.cache)
	if err != nil {
		h.log.Error().Err(err).Msg("redis ping failed")
	}

	respond(c, http.StatusOK, "Server is running", api.Health{
		Environment: h.cfg.Environment,
		Database:    dbStatus,
		Cache:       cacheStatus,
	})
}
