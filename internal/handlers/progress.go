package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/api"
	"fittrack/api/internal/middleware"
	"fittrack/api/internal/service"
)

func (h HandlerSet) ListProgress(c *gin.Context) {
	views, err := h.progress.List(c.Request.Context(), middleware.CurrentRequester(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]api.ProgressLog, 0, len(views))
	for _, v := range views {
		out = append(out, progressView(v))
	}
	respondList(c, out)
}

func (h HandlerSet) GetProgress(c *gin.Context) {
	view, err := h.progress.Get(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", progressView(view))
}

func (h HandlerSet) CreateProgress(c *gin.Context) {
	var input service.ProgressInput
	if !h.bind(c, &input) {
		return
	}

	view, err := h.progress.Create(c.Request.Context(), middleware.CurrentRequester(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.RecordProgressLog(view.Log.Completed)
	respond(c, http.StatusCreated, "Progress log created successfully", progressView(view))
}

func (h HandlerSet) UpdateProgress(c *gin.Context) {
	var input service.ProgressInput
	if !h.bind(c, &input) {
		return
	}

	view, err := h.progress.Update(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Progress log updated successfully", progressView(view))
}

func (h HandlerSet) DeleteProgress(c *gin.Context) {
	if err := h.progress.Delete(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Progress log deleted successfully")
}

func (h HandlerSet) Stats(c *gin.Context) {
	stats, err := h.progress.Stats(c.Request.Context(), middleware.CurrentRequester(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", statsView(stats))
}
