package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/middleware"
	"fittrack/api/internal/service"
)

func (h HandlerSet) ListWorkouts(c *gin.Context) {
	views, err := h.catalog.ListWorkouts(c.Request.Context(), middleware.CurrentRequester(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, workoutViews(views))
}

func (h HandlerSet) GetWorkout(c *gin.Context) {
	view, err := h.catalog.GetWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", workoutView(view))
}

func (h HandlerSet) CreateWorkout(c *gin.Context) {
	var input service.WorkoutInput
	if !h.bind(c, &input) {
		return
	}

	view, err := h.catalog.CreateWorkout(c.Request.Context(), middleware.CurrentRequester(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Workout created successfully", workoutView(view))
}

func (h HandlerSet) UpdateWorkout(c *gin.Context) {
	var input service.WorkoutInput
	if !h.bind(c, &input) {
		return
	}

	view, err := h.catalog.UpdateWorkout(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Workout updated successfully", workoutView(view))
}

func (h HandlerSet) DeleteWorkout(c *gin.Context) {
	if err := h.catalog.DeleteWorkout(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Workout deleted successfully")
}
