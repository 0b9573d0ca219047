package service

import "fittrack/api/internal/models"

// Requester is the caller identity produced once by the auth middleware and
// passed explicitly to every service call. A nil User means anonymous.
type Requester struct {
	User *models.User
}

func Anonymous() Requester { return Requester{} }

func AuthenticatedAs(user models.User) Requester {
	return Requester{User: &user}
}

func (r Requester) Authenticated() bool { return r.User != nil }

func (r Requester) ID() string {
	if r.User == nil {
		return ""
	}
	return r.User.ID
}

func (r Requester) IsAdmin() bool {
	return r.User != nil && r.User.IsAdmin()
}

func (r Requester) requireUser() error {
	if r.User == nil {
		return newError(ErrUnauthenticated, "Authentication required")
	}
	return nil
}
