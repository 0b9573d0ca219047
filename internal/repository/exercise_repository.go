package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/api/internal/models"
)

const exerciseColumns = `id, name, category, difficulty, description, target_muscles, equipment,
	instructions, sets, reps, duration, calories_burned, created_by, created_at, updated_at`

// ExerciseRepository serves both exercises and default_exercises; the table
// is fixed at construction.
type ExerciseRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewExerciseRepository(pool *pgxpool.Pool, table string) *ExerciseRepository {
	return &ExerciseRepository{pool: pool, table: table}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise models.Exercise) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, r.table, exerciseColumns)

	_, err := r.pool.Exec(ctx, query,
		exercise.ID,
		exercise.Name,
		exercise.Category,
		exercise.Difficulty,
		exercise.Description,
		nonNil(exercise.TargetMuscles),
		nonNil(exercise.Equipment),
		nonNil(exercise.Instructions),
		exercise.Sets,
		exercise.Reps,
		exercise.Duration,
		exercise.CaloriesBurned,
		exercise.CreatedBy,
		exercise.CreatedAt,
		exercise.UpdatedAt,
	)
	return translate(err)
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id string) (models.Exercise, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, exerciseColumns, r.table)
	return scanExercise(r.pool.QueryRow(ctx, query, id))
}

func (r *ExerciseRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Exercise, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, exerciseColumns, r.table)
	return r.queryExercises(ctx, query, ids)
}

func (r *ExerciseRepository) List(ctx context.Context) ([]models.Exercise, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC, id DESC`, exerciseColumns, r.table)
	return r.queryExercises(ctx, query)
}

func (r *ExerciseRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Exercise, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC
	`, exerciseColumns, r.table)
	return r.queryExercises(ctx, query, ownerID)
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise models.Exercise) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, category = $3, difficulty = $4, description = $5, target_muscles = $6,
		    equipment = $7, instructions = $8, sets = $9, reps = $10, duration = $11,
		    calories_burned = $12, updated_at = $13
		WHERE id = $1
	`, r.table)

	return expectOne(r.pool.Exec(ctx, query,
		exercise.ID,
		exercise.Name,
		exercise.Category,
		exercise.Difficulty,
		exercise.Description,
		nonNil(exercise.TargetMuscles),
		nonNil(exercise.Equipment),
		nonNil(exercise.Instructions),
		exercise.Sets,
		exercise.Reps,
		exercise.Duration,
		exercise.CaloriesBurned,
		exercise.UpdatedAt,
	))
}

func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	return expectOne(r.pool.Exec(ctx, query, id))
}

func (r *ExerciseRepository) queryExercises(ctx context.Context, query string, args ...any) ([]models.Exercise, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func scanExercise(row pgx.Row) (models.Exercise, error) {
	var exercise models.Exercise
	if err := row.Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Category,
		&exercise.Difficulty,
		&exercise.Description,
		&exercise.TargetMuscles,
		&exercise.Equipment,
		&exercise.Instructions,
		&exercise.Sets,
		&exercise.Reps,
		&exercise.Duration,
		&exercise.CaloriesBurned,
		&exercise.CreatedBy,
		&exercise.CreatedAt,
		&exercise.UpdatedAt,
	); err != nil {
		return models.Exercise{}, translate(err)
	}
	return exercise, nil
}
