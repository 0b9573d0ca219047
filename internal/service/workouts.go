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

type WorkoutInput struct {
	Name           *string            `json:"name"`
	Category       *models.Category   `json:"category"`
	Difficulty     *models.Difficulty `json:"difficulty"`
	Description    *string            `json:"description"`
	Duration       *int               `json:"duration"`
	CaloriesBurned *int               `json:"caloriesBurned"`
	Exercises      []string           `json:"exercises"`
	Instructions   []string           `json:"instructions"`
}

func (in WorkoutInput) apply(w *models.Workout) {
	if in.Name != nil {
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		w.Category = *in.Category
	}
	if in.Difficulty != nil {
		w.Difficulty = *in.Difficulty
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	if in.Duration != nil {
		w.Duration = *in.Duration
	}
	if in.CaloriesBurned != nil {
		w.CaloriesBurned = *in.CaloriesBurned
	}
	if in.Exercises != nil {
		w.Exercises = trimmed(in.Exercises)
	}
	if in.Instructions != nil {
		w.Instructions = trimmed(in.Instructions)
	}
}

func validateWorkout(w models.Workout) error {
	if w.Name == "" {
		return newError(ErrValidation, "Workout name is required")
	}
	if err := validateCategory(w.Category); err != nil {
		return err
	}
	if err := validateDifficulty(w.Difficulty); err != nil {
		return err
	}
	if err := validateMin("Duration", w.Duration, 0); err != nil {
		return err
	}
	return validateMin("Calories burned", w.CaloriesBurned, 0)
}

// WorkoutView is a workout with its exercise ids expanded, in the stored
// order, to the exercises that could still be found.
type WorkoutView struct {
	Workout   catalog.Entry[models.Workout]
	Exercises []catalog.Entry[models.Exercise]
}

func (v WorkoutView) IsDefault() bool { return v.Workout.IsDefault() }

func (s *CatalogService) workoutStore(source catalog.Source) repository.WorkoutStore {
	if source == catalog.SourceDefault {
		return s.defaultWorkouts
	}
	return s.workouts
}

// populate expands every workout with a single query per exercise collection.
func (s *CatalogService) populate(ctx context.Context, entries []catalog.Entry[models.Workout]) ([]WorkoutView, error) {
	var userIDs, defaultIDs []string
	for _, entry := range entries {
		if entry.IsDefault() {
			defaultIDs = append(defaultIDs, entry.Item.Exercises...)
		} else {
			userIDs = append(userIDs, entry.Item.Exercises...)
		}
	}

	indexes := make(map[catalog.Source]catalog.ExerciseIndex, 2)
	for source, refs := range map[catalog.Source][]string{catalog.SourceUser: userIDs, catalog.SourceDefault: defaultIDs} {
		if len(refs) == 0 {
			indexes[source] = catalog.ExerciseIndex{}
			continue
		}
		index, err := s.populationChain(source).Index(ctx, refs)
		if err != nil {
			return nil, err
		}
		indexes[source] = index
	}

	views := make([]WorkoutView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, WorkoutView{
			Workout:   entry,
			Exercises: indexes[entry.Source].Expand(entry.Item.Exercises),
		})
	}
	return views, nil
}

func (s *CatalogService) view(ctx context.Context, entry catalog.Entry[models.Workout]) (WorkoutView, error) {
	views, err := s.populate(ctx, []catalog.Entry[models.Workout]{entry})
	if err != nil {
		return WorkoutView{}, err
	}
	return views[0], nil
}

// ListWorkouts returns the default workouts followed by the requester's own,
// each with its exercises populated.
func (s *CatalogService) ListWorkouts(ctx context.Context, req Requester) ([]WorkoutView, error) {
	defaults, err := s.defaultWorkouts.List(ctx)
	if err != nil {
		return nil, err
	}
	var owned []models.Workout
	if req.Authenticated() {
		if owned, err = s.workouts.ListByOwner(ctx, req.ID()); err != nil {
			return nil, err
		}
	}
	return s.populate(ctx, catalog.Merge(defaults, owned))
}

func (s *CatalogService) ListDefaultWorkouts(ctx context.Context) ([]WorkoutView, error) {
	defaults, err := s.defaultWorkouts.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, catalog.Tag(catalog.SourceDefault, defaults))
}

func (s *CatalogService) GetWorkout(ctx context.Context, id string) (WorkoutView, error) {
	entry, err := s.workoutLookup().Resolve(ctx, id)
	if err != nil {
		return WorkoutView{}, resolveError(err, "Workout not found")
	}
	return s.view(ctx, entry)
}

func (s *CatalogService) GetDefaultWorkout(ctx context.Context, id string) (WorkoutView, error) {
	entry, err := s.defaultWorkoutLookup().Resolve(ctx, id)
	if err != nil {
		return WorkoutView{}, resolveError(err, "Default workout not found")
	}
	return s.view(ctx, entry)
}

// CreateWorkout stores a user workout. Category and difficulty fall back to
// strength and intermediate so ad-hoc sessions can be logged with a name and
// a duration only.
func (s *CatalogService) CreateWorkout(ctx context.Context, req Requester, input WorkoutInput) (WorkoutView, error) {
	if err := req.requireUser(); err != nil {
		return WorkoutView{}, err
	}
	if input.Category == nil || *input.Category == "" {
		category := models.CategoryStrength
		input.Category = &category
	}
	if input.Difficulty == nil || *input.Difficulty == "" {
		difficulty := models.DifficultyIntermediate
		input.Difficulty = &difficulty
	}
	return s.createWorkout(ctx, catalog.SourceUser, req, input)
}

func (s *CatalogService) CreateDefaultWorkout(ctx context.Context, req Requester, input WorkoutInput) (WorkoutView, error) {
	if err := requireAdmin(req); err != nil {
		return WorkoutView{}, err
	}
	return s.createWorkout(ctx, catalog.SourceDefault, req, input)
}

func (s *CatalogService) createWorkout(ctx context.Context, source catalog.Source, req Requester, input WorkoutInput) (WorkoutView, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" || input.Duration == nil {
		return WorkoutView{}, newError(ErrValidation, "Please provide name and duration")
	}

	now := s.now().UTC()
	owner := req.ID()
	workout := models.Workout{
		ID:           ids.New(),
		Exercises:    []string{},
		Instructions: []string{},
		CreatedBy:    &owner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	input.apply(&workout)
	if err := validateWorkout(workout); err != nil {
		return WorkoutView{}, err
	}
	if err := s.validateReferences(ctx, source, req, workout.Exercises); err != nil {
		return WorkoutView{}, err
	}

	if err := s.workoutStore(source).Create(ctx, workout); err != nil {
		return WorkoutView{}, err
	}
	s.log.Info().Str("workout_id", workout.ID).Str("source", source.String()).Str("user_id", owner).Msg("workout created")
	return s.view(ctx, catalog.Entry[models.Workout]{Source: source, Item: workout})
}

func (s *CatalogService) UpdateWorkout(ctx context.Context, req Requester, id string, input WorkoutInput) (WorkoutView, error) {
	if err := req.requireUser(); err != nil {
		return WorkoutView{}, err
	}
	entry, err := s.workoutLookup().Resolve(ctx, id)
	if err != nil {
		return WorkoutView{}, resolveError(err, "Workout not found")
	}
	return s.updateWorkout(ctx, req, entry, input)
}

func (s *CatalogService) UpdateDefaultWorkout(ctx context.Context, req Requester, id string, input WorkoutInput) (WorkoutView, error) {
	if err := requireAdmin(req); err != nil {
		return WorkoutView{}, err
	}
	entry, err := s.defaultWorkoutLookup().Resolve(ctx, id)
	if err != nil {
		return WorkoutView{}, resolveError(err, "Default workout not found")
	}
	return s.updateWorkout(ctx, req, entry, input)
}

func (s *CatalogService) updateWorkout(ctx context.Context, req Requester, entry catalog.Entry[models.Workout], input WorkoutInput) (WorkoutView, error) {
	if err := authorize(req, entry.Source, entry.Item.OwnedBy, "update", "workout"); err != nil {
		return WorkoutView{}, err
	}

	workout := entry.Item
	input.apply(&workout)
	if err := validateWorkout(workout); err != nil {
		return WorkoutView{}, err
	}
	if input.Exercises != nil {
		if err := s.validateReferences(ctx, entry.Source, req, workout.Exercises); err != nil {
			return WorkoutView{}, err
		}
	}
	workout.UpdatedAt = s.now().UTC()

	if err := s.workoutStore(entry.Source).Update(ctx, workout); err != nil {
		return WorkoutView{}, resolveError(err, describe(entry.Source, "Workout")+" not found")
	}
	return s.view(ctx, catalog.Entry[models.Workout]{Source: entry.Source, Item: workout})
}

func (s *CatalogService) DeleteWorkout(ctx context.Context, req Requester, id string) error {
	if err := req.requireUser(); err != nil {
		return err
	}
	entry, err := s.workoutLookup().Resolve(ctx, id)
	if err != nil {
		return resolveError(err, "Workout not found")
	}
	return s.deleteWorkout(ctx, req, entry)
}

func (s *CatalogService) DeleteDefaultWorkout(ctx context.Context, req Requester, id string) error {
	if err := requireAdmin(req); err != nil {
		return err
	}
	entry, err := s.defaultWorkoutLookup().Resolve(ctx, id)
	if err != nil {
		return resolveError(err, "Default workout not found")
	}
	return s.deleteWorkout(ctx, req, entry)
}

func (s *CatalogService) deleteWorkout(ctx context.Context, req Requester, entry catalog.Entry[models.Workout]) error {
	if err := authorize(req, entry.Source, entry.Item.OwnedBy, "delete", "workout"); err != nil {
		return err
	}
	err := s.workoutStore(entry.Source).Delete(ctx, entry.Item.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, describe(entry.Source, "Workout")+" not found")
	}
	if err != nil {
		return err
	}
	s.log.Info().Str("workout_id", entry.Item.ID).Str("source", entry.Source.String()).Str("user_id", req.ID()).Msg("workout deleted")
	return nil
}
