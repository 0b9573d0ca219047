package repository

import (
	"context"
	"errors"

	"fittrack/api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, user models.User) error
}

// ExerciseStore is implemented once per collection: the user-owned exercises
// and the admin-owned default exercises share the same shape.
type ExerciseStore interface {
	Create(ctx context.Context, exercise models.Exercise) error
	GetByID(ctx context.Context, id string) (models.Exercise, error)
	// FindByIDs returns the subset of ids present in the collection, in no
	// particular order. Unknown ids are not an error.
	FindByIDs(ctx context.Context, ids []string) ([]models.Exercise, error)
	// List returns every document, newest first.
	List(ctx context.Context) ([]models.Exercise, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Exercise, error)
	Update(ctx context.Context, exercise models.Exercise) error
	Delete(ctx context.Context, id string) error
}

type WorkoutStore interface {
	Create(ctx context.Context, workout models.Workout) error
	GetByID(ctx context.Context, id string) (models.Workout, error)
	List(ctx context.Context) ([]models.Workout, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Workout, error)
	Update(ctx context.Context, workout models.Workout) error
	Delete(ctx context.Context, id string) error
	// ReferencesExercise reports whether any workout lists exerciseID.
	ReferencesExercise(ctx context.Context, exerciseID string) (bool, error)
}

type ProgressStore interface {
	Create(ctx context.Context, log models.ProgressLog) error
	GetByID(ctx context.Context, id string) (models.ProgressLog, error)
	// ListByUser returns the user's logs, most recent date first.
	ListByUser(ctx context.Context, userID string, completedOnly bool) ([]models.ProgressLog, error)
	Update(ctx context.Context, log models.ProgressLog) error
	Delete(ctx context.Context, id string) error
}

type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store bundles every collection of one persistence backend.
type Store struct {
	Backend          Backend
	Users            UserStore
	Exercises        ExerciseStore
	DefaultExercises ExerciseStore
	Workouts         WorkoutStore
	DefaultWorkouts  WorkoutStore
	Progress         ProgressStore
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
