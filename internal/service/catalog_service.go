package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fittrack/api/internal/catalog"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
)

const (
	msgInsufficientRole  = "Insufficient permissions for this action."
	msgExercisesNotFound = "One or more exercises not found"
	msgExerciseInUse     = "Exercise is still used inside a default workout. Update those workouts first."
)

// CatalogService serves exercises and workouts from the user-owned and the
// default collections.
type CatalogService struct {
	exercises        repository.ExerciseStore
	defaultExercises repository.ExerciseStore
	workouts         repository.WorkoutStore
	defaultWorkouts  repository.WorkoutStore
	log              zerolog.Logger
	now              func() time.Time
}

func NewCatalogService(store repository.Store, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		exercises:        store.Exercises,
		defaultExercises: store.DefaultExercises,
		workouts:         store.Workouts,
		defaultWorkouts:  store.DefaultWorkouts,
		log:              log,
		now:              time.Now,
	}
}

// MissingExercises is attached to the validation error raised when a workout
// references exercises that could not be resolved.
type MissingExercises struct {
	Missing []string `json:"missing"`
}

func (s *CatalogService) exerciseLookup() catalog.Chain[models.Exercise] {
	return catalog.Chain[models.Exercise]{
		{Source: catalog.SourceUser, Repo: s.exercises},
		{Source: catalog.SourceDefault, Repo: s.defaultExercises},
	}
}

func (s *CatalogService) defaultExerciseLookup() catalog.Chain[models.Exercise] {
	return catalog.Chain[models.Exercise]{
		{Source: catalog.SourceDefault, Repo: s.defaultExercises},
	}
}

func (s *CatalogService) workoutLookup() catalog.Chain[models.Workout] {
	return catalog.Chain[models.Workout]{
		{Source: catalog.SourceUser, Repo: s.workouts},
		{Source: catalog.SourceDefault, Repo: s.defaultWorkouts},
	}
}

func (s *CatalogService) defaultWorkoutLookup() catalog.Chain[models.Workout] {
	return catalog.Chain[models.Workout]{
		{Source: catalog.SourceDefault, Repo: s.defaultWorkouts},
	}
}

// populationChain picks the collections a workout's exercise ids are expanded
// from: user workouts may mix both catalogs, default workouts only defaults.
func (s *CatalogService) populationChain(source catalog.Source) catalog.ExerciseChain {
	if source == catalog.SourceDefault {
		return catalog.ExerciseChain{{Source: catalog.SourceDefault, Repo: s.defaultExercises}}
	}
	return catalog.ExerciseChain{
		{Source: catalog.SourceUser, Repo: s.exercises},
		{Source: catalog.SourceDefault, Repo: s.defaultExercises},
	}
}

// referenceChain picks what a workout being written may reference. User
// workouts accept the requester's own exercises plus defaults.
func (s *CatalogService) referenceChain(source catalog.Source, req Requester) catalog.ExerciseChain {
	if source == catalog.SourceDefault {
		return catalog.ExerciseChain{{Source: catalog.SourceDefault, Repo: s.defaultExercises}}
	}
	ownerID := req.ID()
	return catalog.ExerciseChain{
		{
			Source: catalog.SourceUser,
			Repo:   s.exercises,
			Accept: func(e models.Exercise) bool { return e.OwnedBy(ownerID) },
		},
		{Source: catalog.SourceDefault, Repo: s.defaultExercises},
	}
}

func (s *CatalogService) validateReferences(ctx context.Context, source catalog.Source, req Requester, ids []string) error {
	missing, err := s.referenceChain(source, req).Missing(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &Error{Kind: ErrValidation, Message: msgExercisesNotFound, Data: MissingExercises{Missing: missing}}
	}
	return nil
}

// authorize applies the mutation rule shared by every catalog entity: user
// entries need the owner, default entries need an admin.
func authorize(req Requester, source catalog.Source, ownedBy func(string) bool, action, noun string) error {
	if err := req.requireUser(); err != nil {
		return err
	}
	if source == catalog.SourceDefault {
		if !req.IsAdmin() {
			return newError(ErrForbidden, msgInsufficientRole)
		}
		return nil
	}
	if !ownedBy(req.ID()) {
		return newError(ErrForbidden, "Not authorized to %s this %s", action, noun)
	}
	return nil
}

func requireAdmin(req Requester) error {
	if err := req.requireUser(); err != nil {
		return err
	}
	if !req.IsAdmin() {
		return newError(ErrForbidden, msgInsufficientRole)
	}
	return nil
}

func resolveError(err error, message string) error {
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, message)
	}
	return err
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func validateCategory(c models.Category) error {
	if c == "" {
		return newError(ErrValidation, "Category is required")
	}
	if !c.Valid() {
		return newError(ErrValidation, "Category must be one of strength, cardio, flexibility, sports")
	}
	return nil
}

func validateDifficulty(d models.Difficulty) error {
	if d == "" {
		return newError(ErrValidation, "Difficulty is required")
	}
	if !d.Valid() {
		return newError(ErrValidation, "Difficulty must be one of beginner, intermediate, advanced")
	}
	return nil
}

func validateMin(field string, value, min int) error {
	if value < min {
		return newError(ErrValidation, "%s must be at least %d", field, min)
	}
	return nil
}

func describe(source catalog.Source, noun string) string {
	if source == catalog.SourceDefault {
		return fmt.Sprintf("Default %s", strings.ToLower(noun))
	}
	return noun
}
