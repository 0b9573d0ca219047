package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied in order inside one transaction. Every statement is
// idempotent so Migrate runs on each boot.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash BYTEA NOT NULL,
		goals         TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		join_date     TIMESTAMPTZ NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	exerciseTable("exercises"),
	exerciseTable("default_exercises"),
	workoutTable("workouts"),
	workoutTable("default_workouts"),
	`CREATE TABLE IF NOT EXISTS progress_logs (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users(id),
		workout_id      TEXT,
		workout_name    TEXT NOT NULL,
		date            TIMESTAMPTZ NOT NULL,
		duration        INTEGER NOT NULL CHECK (duration >= 0),
		calories_burned INTEGER NOT NULL CHECK (calories_burned >= 0),
		notes           TEXT NOT NULL DEFAULT '',
		completed       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS exercises_owner_idx ON exercises (created_by, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS workouts_owner_idx ON workouts (created_by, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS default_workouts_exercises_idx ON default_workouts USING GIN (exercises)`,
	`CREATE INDEX IF NOT EXISTS progress_logs_user_date_idx ON progress_logs (user_id, date DESC)`,
}

func exerciseTable(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		category        TEXT NOT NULL,
		difficulty      TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		target_muscles  TEXT[] NOT NULL DEFAULT '{}',
		equipment       TEXT[] NOT NULL DEFAULT '{}',
		instructions    TEXT[] NOT NULL DEFAULT '{}',
		sets            INTEGER CHECK (sets >= 1),
		reps            INTEGER CHECK (reps >= 1),
		duration        INTEGER CHECK (duration >= 0),
		calories_burned INTEGER NOT NULL DEFAULT 0 CHECK (calories_burned >= 0),
		created_by      TEXT,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`, name)
}

func workoutTable(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		category        TEXT NOT NULL,
		difficulty      TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		duration        INTEGER NOT NULL CHECK (duration >= 0),
		calories_burned INTEGER NOT NULL DEFAULT 0 CHECK (calories_burned >= 0),
		exercises       TEXT[] NOT NULL DEFAULT '{}',
		instructions    TEXT[] NOT NULL DEFAULT '{}',
		created_by      TEXT,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`, name)
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate step %d: %w", i, err)
			}
		}
		return nil
	})
}
