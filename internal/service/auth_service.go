package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"fittrack/api/internal/ids"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/security"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	minNameLength     = 2
	minPasswordLength = 8
	maxGoalsLength    = 500
)

// LoginLimiter counts failed logins per email. Allow reports false once the
// caller must be turned away.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) Fail(context.Context, string) error          { return nil }
func (noopLimiter) Reset(context.Context, string) error         { return nil }

type AuthService struct {
	users   repository.UserStore
	hasher  *security.PasswordHasher
	tokens  *security.TokenIssuer
	limiter LoginLimiter
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(
	users repository.UserStore,
	hasher *security.PasswordHasher,
	tokens *security.TokenIssuer,
	limiter LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		log:     log,
		now:     time.Now,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Goals    string `json:"goals"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput is a partial update: nil fields are left unchanged.
type ProfileInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Goals    *string `json:"goals"`
	Password *string `json:"password"`
}

type AuthResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	goals := strings.TrimSpace(input.Goals)

	if err := validateName(name); err != nil {
		return AuthResult{}, err
	}
	if err := validateEmail(email); err != nil {
		return AuthResult{}, err
	}
	if err := validatePassword(input.Password); err != nil {
		return AuthResult{}, err
	}
	if err := validateGoals(goals); err != nil {
		return AuthResult{}, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.now().UTC()
	user := models.User{
		ID:           ids.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Goals:        goals,
		Role:         models.UserRoleUser,
		JoinDate:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return AuthResult{}, newError(ErrValidation, "Please provide email and password")
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login limiter unavailable")
	} else if !allowed {
		return AuthResult{}, newError(ErrTooManyAttempts, "Too many failed login attempts. Please try again later.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(ctx, email)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash unreadable")
	}
	if err != nil || !ok {
		s.recordFailure(ctx, email)
		return AuthResult{}, ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("reset login attempts failed")
	}
	return s.issue(user)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("record failed login failed")
	}
}

// Me reloads the requester so the response reflects the stored record.
func (s *AuthService) Me(ctx context.Context, req Requester) (models.User, error) {
	if err := req.requireUser(); err != nil {
		return models.User{}, err
	}
	user, err := s.users.GetByID(ctx, req.ID())
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, newError(ErrNotFound, "User not found")
	}
	return user, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, req Requester, input ProfileInput) (models.User, error) {
	user, err := s.Me(ctx, req)
	if err != nil {
		return models.User{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return models.User{}, err
		}
		user.Name = name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if err := validateEmail(email); err != nil {
			return models.User{}, err
		}
		if email != user.Email {
			existing, err := s.users.FindByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return models.User{}, newError(ErrValidation, "Email is already in use")
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return models.User{}, err
			}
		}
		user.Email = email
	}
	if input.Goals != nil {
		goals := strings.TrimSpace(*input.Goals)
		if err := validateGoals(goals); err != nil {
			return models.User{}, err
		}
		user.Goals = goals
	}
	if input.Password != nil && *input.Password != "" {
		if err := validatePassword(*input.Password); err != nil {
			return models.User{}, err
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, newError(ErrValidation, "Email is already in use")
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	if name == "" {
		return newError(ErrValidation, "Name is required")
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return newError(ErrValidation, "Name must be at least 2 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return newError(ErrValidation, "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return newError(ErrValidation, "Please enter a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return newError(ErrValidation, "Password is required")
	}
	if len(password) < minPasswordLength {
		return newError(ErrValidation, "Password must be at least 8 characters")
	}
	return nil
}

func validateGoals(goals string) error {
	if utf8.RuneCountInString(goals) > maxGoalsLength {
		return newError(ErrValidation, "Goals must be less than 500 characters")
	}
	return nil
}
