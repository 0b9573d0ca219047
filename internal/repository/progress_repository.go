package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/api/internal/models"
)

const progressColumns = `id, user_id, workout_id, workout_name, date, duration, calories_burned,
	notes, completed, created_at, updated_at`

type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

func (r *ProgressRepository) Create(ctx context.Context, log models.ProgressLog) error {
	const query = `
		INSERT INTO progress_logs (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.UserID,
		log.WorkoutID,
		log.WorkoutName,
		log.Date,
		log.Duration,
		log.CaloriesBurned,
		log.Notes,
		log.Completed,
		log.CreatedAt,
		log.UpdatedAt,
	)
	return translate(err)
}

func (r *ProgressRepository) GetByID(ctx context.Context, id string) (models.ProgressLog, error) {
	const query = `SELECT ` + progressColumns + ` FROM progress_logs WHERE id = $1`
	return scanProgress(r.pool.QueryRow(ctx, query, id))
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string, completedOnly bool) ([]models.ProgressLog, error) {
	const query = `
		SELECT ` + progressColumns + `
		FROM progress_logs
		WHERE user_id = $1 AND ($2 = FALSE OR completed)
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, completedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ProgressLog
	for rows.Next() {
		log, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *ProgressRepository) Update(ctx context.Context, log models.ProgressLog) error {
	const query = `
		UPDATE progress_logs
		SET workout_id = $2, workout_name = $3, date = $4, duration = $5, calories_burned = $6,
		    notes = $7, completed = $8, updated_at = $9
		WHERE id = $1
	`
	return expectOne(r.pool.Exec(ctx, query,
		log.ID,
		log.WorkoutID,
		log.WorkoutName,
		log.Date,
		log.Duration,
		log.CaloriesBurned,
		log.Notes,
		log.Completed,
		log.UpdatedAt,
	))
}

func (r *ProgressRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.pool.Exec(ctx, `DELETE FROM progress_logs WHERE id = $1`, id))
}

func scanProgress(row pgx.Row) (models.ProgressLog, error) {
	var log models.ProgressLog
	if err := row.Scan(
		&log.ID,
		&log.UserID,
		&log.WorkoutID,
		&log.WorkoutName,
		&log.Date,
		&log.Duration,
		&log.CaloriesBurned,
		&log.Notes,
		&log.Completed,
		&log.CreatedAt,
		&log.UpdatedAt,
	); err != nil {
		return models.ProgressLog{}, translate(err)
	}
	return log, nil
}
