package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	TableExercises        = "exercises"
	TableDefaultExercises = "default_exercises"
	TableWorkouts         = "workouts"
	TableDefaultWorkouts  = "default_workouts"
)

const uniqueViolation = "23505"

type postgresBackend struct {
	pool *pgxpool.Pool
}

func (b postgresBackend) Name() string { return "postgres" }

func (b postgresBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

func (b postgresBackend) Close(context.Context) error {
	b.pool.Close()
	return nil
}

// NewPostgresStore wires every collection onto the same pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return Store{
		Backend:          postgresBackend{pool: pool},
		Users:            NewUserRepository(pool),
		Exercises:        NewExerciseRepository(pool, TableExercises),
		DefaultExercises: NewExerciseRepository(pool, TableDefaultExercises),
		Workouts:         NewWorkoutRepository(pool, TableWorkouts),
		DefaultWorkouts:  NewWorkoutRepository(pool, TableDefaultWorkouts),
		Progress:         NewProgressRepository(pool),
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func expectOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
