package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/middleware"
	"fittrack/api/internal/service"
)

// Default catalog endpoints. Reads are open to any signed-in user; the write
// routes sit behind RequireRoles(admin).

func (h HandlerSet) ListDefaultExercises(c *gin.Context) {
	entries, err := h.catalog.ListDefaultExercises(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, exerciseViews(entries))
}

func (h HandlerSet) GetDefaultExercise(c *gin.Context) {
	entry, err := h.catalog.GetDefaultExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", exerciseView(entry))
}

func (h HandlerSet) CreateDefaultExercise(c *gin.Context) {
	var input service.ExerciseInput
	if !h.bind(c, &input) {
		return
	}

	entry, err := h.catalog.CreateDefaultExercise(c.Request.Context(), middleware.CurrentRequester(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Default exercise created successfully", exerciseView(entry))
}

func (h HandlerSet) UpdateDefaultExercise(c *gin.Context) {
	var input service.ExerciseInput
	if !h.bind(c, &input) {
		return
	}

	entry, err := h.catalog.UpdateDefaultExercise(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Default exercise updated successfully", exerciseView(entry))
}

func (h HandlerSet) DeleteDefaultExercise(c *gin.Context) {
	if err := h.catalog.DeleteDefaultExercise(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Default exercise deleted successfully")
}

func (h HandlerSet) ListDefaultWorkouts(c *gin.Context) {
	views, err := h.catalog.ListDefaultWorkouts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondList(c, workoutViews(views))
}

func (h HandlerSet) GetDefaultWorkout(c *gin.Context) {
	view, err := h.catalog.GetDefaultWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", workoutView(view))
}

func (h HandlerSet) CreateDefaultWorkout(c *gin.Context) {
	var input service.WorkoutInput
	if !h.bind(c, &input) {
		return
	}

	view, err := h.catalog.CreateDefaultWorkout(c.Request.Context(), middleware.CurrentRequester(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Default workout created successfully", workoutView(view))
}

func (h HandlerSet) UpdateDefaultWorkout(c *gin.Context) {
	var input service.WorkoutInput
	if !h.bind(c, &input) {
		return
	}

	view, err := h.catalog.UpdateDefaultWorkout(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Default workout updated successfully", workoutView(view))
}

func (h HandlerSet) DeleteDefaultWorkout(c *gin.Context) {
	if err := h.catalog.DeleteDefaultWorkout(c.Request.Context(), middleware.CurrentRequester(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	deleted(c, "Default workout deleted successfully")
}
