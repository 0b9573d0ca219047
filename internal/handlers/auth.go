package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/api/internal/api"
	"fittrack/api/internal/metrics"
	"fittrack/api/internal/middleware"
	"fittrack/api/internal/service"
)

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var input service.RegisterInput
	if !h.bind(c, &input) {
		return
	}

	result, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", api.AuthPayload{
		Token: result.Token,
		User:  userView(result.User),
	})
}

func (h HandlerSet) Login(c *gin.Context) {
	var input service.LoginInput
	if !h.bind(c, &input) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), input)
	switch {
	case errors.Is(err, service.ErrTooManyAttempts):
		h.metrics.RecordLogin(metrics.LoginThrottled)
	case errors.Is(err, service.ErrUnauthenticated):
		h.metrics.RecordLogin(metrics.LoginFailure)
	case err == nil:
		h.metrics.RecordLogin(metrics.LoginSuccess)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", api.AuthPayload{
		Token: result.Token,
		User:  userView(result.User),
	})
}

func (h HandlerSet) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), middleware.CurrentRequester(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", api.UserPayload{User: userView(user)})
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	var input service.ProfileInput
	if !h.bind(c, &input) {
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), middleware.CurrentRequester(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully", api.UserPayload{User: userView(user)})
}
