package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fittrack/api/internal/config"
	"fittrack/api/internal/ids"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/security"
)

const adminGoals = "System administrator account"

// AdminSeeder makes sure the configured administrator exists at boot.
type AdminSeeder struct {
	users  repository.UserStore
	hasher *security.PasswordHasher
	cfg    config.AdminConfig
	log    zerolog.Logger
	now    func() time.Time
}

func NewAdminSeeder(users repository.UserStore, hasher *security.PasswordHasher, cfg config.AdminConfig, log zerolog.Logger) *AdminSeeder {
	return &AdminSeeder{users: users, hasher: hasher, cfg: cfg, log: log, now: time.Now}
}

// Ensure creates the admin account when missing. An existing account is
// promoted to admin, and its password is reset only when forced.
func (s *AdminSeeder) Ensure(ctx context.Context) error {
	if s.cfg.Email == "" || s.cfg.Password == "" || s.cfg.Name == "" {
		s.log.Warn().Msg("admin email, password or name missing; skipping admin creation")
		return nil
	}

	email := normalizeEmail(s.cfg.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return s.create(ctx, email)
	}
	if err != nil {
		return err
	}

	updated := false
	if user.Role != models.UserRoleAdmin {
		user.Role = models.UserRoleAdmin
		updated = true
	}
	if s.cfg.ForcePasswordReset {
		hash, err := s.hasher.Hash(s.cfg.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		updated = true
	}
	if !updated {
		return nil
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Bool("password_reset", s.cfg.ForcePasswordReset).Msg("admin account updated")
	return nil
}

func (s *AdminSeeder) create(ctx context.Context, email string) error {
	hash, err := s.hasher.Hash(s.cfg.Password)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	user := models.User{
		ID:           ids.New(),
		Name:         strings.TrimSpace(s.cfg.Name),
		Email:        email,
		PasswordHash: hash,
		Goals:        adminGoals,
		Role:         models.UserRoleAdmin,
		JoinDate:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Msg("admin account created")
	return nil
}
