package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/api/internal/models"
)

const workoutColumns = `id, name, category, difficulty, description, duration, calories_burned,
	exercises, instructions, created_by, created_at, updated_at`

// WorkoutRepository serves both workouts and default_workouts.
type WorkoutRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewWorkoutRepository(pool *pgxpool.Pool, table string) *WorkoutRepository {
	return &WorkoutRepository{pool: pool, table: table}
}

func (r *WorkoutRepository) Create(ctx context.Context, workout models.Workout) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.table, workoutColumns)

	_, err := r.pool.Exec(ctx, query,
		workout.ID,
		workout.Name,
		workout.Category,
		workout.Difficulty,
		workout.Description,
		workout.Duration,
		workout.CaloriesBurned,
		nonNil(workout.Exercises),
		nonNil(workout.Instructions),
		workout.CreatedBy,
		workout.CreatedAt,
		workout.UpdatedAt,
	)
	return translate(err)
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id string) (models.Workout, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, workoutColumns, r.table)
	return scanWorkout(r.pool.QueryRow(ctx, query, id))
}

func (r *WorkoutRepository) List(ctx context.Context) ([]models.Workout, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC, id DESC`, workoutColumns, r.table)
	return r.queryWorkouts(ctx, query)
}

func (r *WorkoutRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Workout, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC
	`, workoutColumns, r.table)
	return r.queryWorkouts(ctx, query, ownerID)
}

func (r *WorkoutRepository) Update(ctx context.Context, workout models.Workout) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, category = $3, difficulty = $4, description = $5, duration = $6,
		    calories_burned = $7, exercises = $8, instructions = $9, updated_at = $10
		WHERE id = $1
	`, r.table)

	return expectOne(r.pool.Exec(ctx, query,
		workout.ID,
		workout.Name,
		workout.Category,
		workout.Difficulty,
		workout.Description,
		workout.Duration,
		workout.CaloriesBurned,
		nonNil(workout.Exercises),
		nonNil(workout.Instructions),
		workout.UpdatedAt,
	))
}

func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	return expectOne(r.pool.Exec(ctx, query, id))
}

func (r *WorkoutRepository) ReferencesExercise(ctx context.Context, exerciseID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE $1 = ANY(exercises))`, r.table)
	var exists bool
	if err := r.pool.QueryRow(ctx, query, exerciseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *WorkoutRepository) queryWorkouts(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []models.Workout
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	return workouts, rows.Err()
}

func scanWorkout(row pgx.Row) (models.Workout, error) {
	var workout models.Workout
	if err := row.Scan(
		&workout.ID,
		&workout.Name,
		&workout.Category,
		&workout.Difficulty,
		&workout.Description,
		&workout.Duration,
		&workout.CaloriesBurned,
		&workout.Exercises,
		&workout.Instructions,
		&workout.CreatedBy,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	); err != nil {
		return models.Workout{}, translate(err)
	}
	return workout, nil
}
