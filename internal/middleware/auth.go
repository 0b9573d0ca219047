package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fittrack/api/internal/api"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/security"
	"fittrack/api/internal/service"
)

const (
	requesterKey = "requester"
	msgNoToken   = "No token provided. Authorization denied."
)

// Authenticator turns a bearer token into a service.Requester stored on the
// gin context. Handlers read it back with CurrentRequester.
type Authenticator struct {
	users  repository.UserStore
	tokens *security.TokenIssuer
	log    zerolog.Logger
}

func NewAuthenticator(users repository.UserStore, tokens *security.TokenIssuer, log zerolog.Logger) *Authenticator {
	return &Authenticator{users: users, tokens: tokens, log: log}
}

type authFailure struct {
	status  int
	message string
}

func (a *Authenticator) resolve(c *gin.Context) (service.Requester, *authFailure) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return service.Anonymous(), &authFailure{http.StatusUnauthorized, msgNoToken}
	}

	claims, err := a.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	switch {
	case errors.Is(err, security.ErrTokenExpired):
		return service.Anonymous(), &authFailure{http.StatusUnauthorized, "Token has expired."}
	case err != nil:
		return service.Anonymous(), &authFailure{http.StatusUnauthorized, "Invalid token."}
	}

	user, err := a.users.GetByID(c.Request.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return service.Anonymous(), &authFailure{http.StatusUnauthorized, "Token is not valid. User not found."}
	}
	if err != nil {
		a.log.Error().Err(err).Str("user_id", claims.UserID).Msg("load token user failed")
		return service.Anonymous(), &authFailure{http.StatusInternalServerError, "Server error during authentication."}
	}

	user.PasswordHash = nil
	return service.AuthenticatedAs(user), nil
}

// RequireAuth rejects requests without a valid token for an existing user.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, failure := a.resolve(c)
		if failure != nil {
			c.AbortWithStatusJSON(failure.status, api.Envelope[any]{Message: failure.message})
			return
		}
		c.Set(requesterKey, req)
		c.Next()
	}
}

// OptionalAuth never rejects: any failure leaves the request anonymous.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, _ := a.resolve(c)
		c.Set(requesterKey, req)
		c.Next()
	}
}

func CurrentRequester(c *gin.Context) service.Requester {
	if v, ok := c.Get(requesterKey); ok {
		if req, ok := v.(service.Requester); ok {
			return req
		}
	}
	return service.Anonymous()
}
