package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/middleware"
	"fittrack/api/internal/service"
)

func (h HandlerSet) ListExercises(c *gin.Context) {
	entries, err := h.catalog.ListExercises(c.Request.Context(), middleware.CurrentRequester(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, exerciseViews(entries))
}

func (h HandlerSet) GetExercise(c *gin.Context) {
	entry, err := h.catalog.GetExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", exerciseView(entry))
}

func (h HandlerSet) CreateExercise(c *gin.Context) {
	var input service.ExerciseInput
	if !h.bind(c, &input) {
		return
	}

	entry, err := h.catalog.CreateExercise(c.Request.Context(), middleware.CurrentRequester(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Exercise created successfully", exerciseView(entry))
}

func (h HandlerSet) UpdateExercise(c *gin.Context) {
	var input service.ExerciseInput
	if !h.bind(c, &input) {
		return
	}

	entry, err := h.catalog.UpdateExercise(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Exercise updated successfully", exerciseView(entry))
}

func (h HandlerSet) DeleteExercise(c *gin.Context) {
	if err := h.catalog.DeleteExercise(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Exercise deleted successfully")
}
