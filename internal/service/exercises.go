package service

import (
	"context"
	"errors"
	"strings"

	"fittrack/api/internal/catalog"
	"fittrack/api/internal/ids"
	"fittrack/api/internal/models"
	"fittrack/api/internal/repository"
)

// ExerciseInput is used for creation and partial updates; nil fields are
// left unchanged on update.
type ExerciseInput struct {
	Name           *string            `json:"name"`
	Category       *models.Category   `json:"category"`
	Difficulty     *models.Difficulty `json:"difficulty"`
	Description    *string            `json:"description"`
	TargetMuscles  []string           `json:"targetMuscles"`
	Equipment      []string           `json:"equipment"`
	Instructions   []string           `json:"instructions"`
	Sets           *int               `json:"sets"`
	Reps           *int               `json:"reps"`
	Duration       *int               `json:"duration"`
	CaloriesBurned *int               `json:"caloriesBurned"`
}

func (in ExerciseInput) apply(e *models.Exercise) {
	if in.Name != nil {
		e.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Difficulty != nil {
		e.Difficulty = *in.Difficulty
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.TargetMuscles != nil {
		e.TargetMuscles = trimmed(in.TargetMuscles)
	}
	if in.Equipment != nil {
		e.Equipment = trimmed(in.Equipment)
	}
	if in.Instructions != nil {
		e.Instructions = trimmed(in.Instructions)
	}
	if in.Sets != nil {
		e.Sets = in.Sets
	}
	if in.Reps != nil {
		e.Reps = in.Reps
	}
	if in.Duration != nil {
		e.Duration = in.Duration
	}
	if in.CaloriesBurned != nil {
		e.CaloriesBurned = *in.CaloriesBurned
	}
}

func validateExercise(e models.Exercise) error {
	if e.Name == "" {
		return newError(ErrValidation, "Exercise name is required")
	}
	if err := validateCategory(e.Category); err != nil {
		return err
	}
	if err := validateDifficulty(e.Difficulty); err != nil {
		return err
	}
	if e.Sets != nil {
		if err := validateMin("Sets", *e.Sets, 1); err != nil {
			return err
		}
	}
	if e.Reps != nil {
		if err := validateMin("Reps", *e.Reps, 1); err != nil {
			return err
		}
	}
	if e.Duration != nil {
		if err := validateMin("Duration", *e.Duration, 0); err != nil {
			return err
		}
	}
	return validateMin("Calories burned", e.CaloriesBurned, 0)
}

func (s *CatalogService) exerciseStore(source catalog.Source) repository.ExerciseStore {
	if source == catalog.SourceDefault {
		return s.defaultExercises
	}
	return s.exercises
}

// ListExercises returns the default catalog followed by the requester's own
// exercises. Anonymous requesters only see defaults.
func (s *CatalogService) ListExercises(ctx context.Context, req Requester) ([]catalog.Entry[models.Exercise], error) {
	defaults, err := s.defaultExercises.List(ctx)
	if err != nil {
		return nil, err
	}
	var owned []models.Exercise
	if req.Authenticated() {
		if owned, err = s.exercises.ListByOwner(ctx, req.ID()); err != nil {
			return nil, err
		}
	}
	return catalog.Merge(defaults, owned), nil
}

func (s *CatalogService) ListDefaultExercises(ctx context.Context) ([]catalog.Entry[models.Exercise], error) {
	defaults, err := s.defaultExercises.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Tag(catalog.SourceDefault, defaults), nil
}

func (s *CatalogService) GetExercise(ctx context.Context, id string) (catalog.Entry[models.Exercise], error) {
	entry, err := s.exerciseLookup().Resolve(ctx, id)
	return entry, resolveError(err, "Exercise not found")
}

func (s *CatalogService) GetDefaultExercise(ctx context.Context, id string) (catalog.Entry[models.Exercise], error) {
	entry, err := s.defaultExerciseLookup().Resolve(ctx, id)
	return entry, resolveError(err, "Default exercise not found")
}

func (s *CatalogService) CreateExercise(ctx context.Context, req Requester, input ExerciseInput) (catalog.Entry[models.Exercise], error) {
	if err := req.requireUser(); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}
	return s.createExercise(ctx, catalog.SourceUser, req, input)
}

func (s *CatalogService) CreateDefaultExercise(ctx context.Context, req Requester, input ExerciseInput) (catalog.Entry[models.Exercise], error) {
	if err := requireAdmin(req); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}
	return s.createExercise(ctx, catalog.SourceDefault, req, input)
}

func (s *CatalogService) createExercise(ctx context.Context, source catalog.Source, req Requester, input ExerciseInput) (catalog.Entry[models.Exercise], error) {
	now := s.now().UTC()
	owner := req.ID()
	exercise := models.Exercise{
		ID:            ids.New(),
		TargetMuscles: []string{},
		Equipment:     []string{},
		Instructions:  []string{},
		CreatedBy:     &owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	input.apply(&exercise)
	if err := validateExercise(exercise); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}

	if err := s.exerciseStore(source).Create(ctx, exercise); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}
	s.log.Info().Str("exercise_id", exercise.ID).Str("source", source.String()).Str("user_id", owner).Msg("exercise created")
	return catalog.Entry[models.Exercise]{Source: source, Item: exercise}, nil
}

// UpdateExercise resolves id against the user collection first, so it can edit either
// kind of entry provided the requester is allowed to.
func (s *CatalogService) UpdateExercise(ctx context.Context, req Requester, id string, input ExerciseInput) (catalog.Entry[models.Exercise], error) {
	if err := req.requireUser(); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}
	entry, err := s.exerciseLookup().Resolve(ctx, id)
	if err != nil {
		return catalog.Entry[models.Exercise]{}, resolveError(err, "Exercise not found")
	}
	return s.updateExercise(ctx, req, entry, input)
}

func (s *CatalogService) UpdateDefaultExercise(ctx context.Context, req Requester, id string, input ExerciseInput) (catalog.Entry[models.Exercise], error) {
	if err := requireAdmin(req); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}
	entry, err := s.defaultExerciseLookup().Resolve(ctx, id)
	if err != nil {
		return catalog.Entry[models.Exercise]{}, resolveError(err, "Default exercise not found")
	}
	return s.updateExercise(ctx, req, entry, input)
}

func (s *CatalogService) updateExercise(ctx context.Context, req Requester, entry catalog.Entry[models.Exercise], input ExerciseInput) (catalog.Entry[models.Exercise], error) {
	if err := authorize(req, entry.Source, entry.Item.OwnedBy, "update", "exercise"); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}

	exercise := entry.Item
	input.apply(&exercise)
	if err := validateExercise(exercise); err != nil {
		return catalog.Entry[models.Exercise]{}, err
	}
	exercise.UpdatedAt = s.now().UTC()

	if err := s.exerciseStore(entry.Source).Update(ctx, exercise); err != nil {
		return catalog.Entry[models.Exercise]{}, resolveError(err, describe(entry.Source, "Exercise")+" not found")
	}
	return catalog.Entry[models.Exercise]{Source: entry.Source, Item: exercise}, nil
}

// DeleteExercise removes a user or default exercise. Only default exercises
// are checked against workouts still referencing them; user workouts may be
// left holding ids of deleted user exercises.
func (s *CatalogService) DeleteExercise(ctx context.Context, req Requester, id string) error {
	if err := req.requireUser(); err != nil {
		return err
	}
	entry, err := s.exerciseLookup().Resolve(ctx, id)
	if err != nil {
		return resolveError(err, "Exercise not found")
	}
	return s.deleteExercise(ctx, req, entry)
}

func (s *CatalogService) DeleteDefaultExercise(ctx context.Context, req Requester, id string) error {
	if err := requireAdmin(req); err != nil {
		return err
	}
	entry, err := s.defaultExerciseLookup().Resolve(ctx, id)
	if err != nil {
		return resolveError(err, "Default exercise not found")
	}
	return s.deleteExercise(ctx, req, entry)
}

func (s *CatalogService) deleteExercise(ctx context.Context, req Requester, entry catalog.Entry[models.Exercise]) error {
	if err := authorize(req, entry.Source, entry.Item.OwnedBy, "delete", "exercise"); err != nil {
		return err
	}

	if entry.IsDefault() {
		inUse, err := s.defaultWorkouts.ReferencesExercise(ctx, entry.Item.ID)
		if err != nil {
			return err
		}
		if inUse {
			return newError(ErrConflict, msgExerciseInUse)
		}
	}

	err := s.exerciseStore(entry.Source).Delete(ctx, entry.Item.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, describe(entry.Source, "Exercise")+" not found")
	}
	if err != nil {
		return err
	}
	s.log.Info().Str("exercise_id", entry.Item.ID).Str("source", entry.Source.String()).Str("user_id", req.ID()).Msg("exercise deleted")
	return nil
}
