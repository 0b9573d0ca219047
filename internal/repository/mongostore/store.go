// Package mongostore implements the repository interfaces on MongoDB.
//
// Documents use string _id values generated by the ids package, so both
// backends share one identifier format.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fittrack/api/internal/repository"
)

const (
	ColUsers            = "users"
	ColExercises        = "exercises"
	ColDefaultExercises = "default_exercises"
	ColWorkouts         = "workouts"
	ColDefaultWorkouts  = "default_workouts"
	ColProgressLogs     = "progress_logs"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects, pings and ensures indexes.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Name() string { return "mongo" }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Repositories exposes the store through the backend-neutral bundle.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Backend:          s,
		Users:            &UserCollection{col: s.col(ColUsers)},
		Exercises:        &ExerciseCollection{col: s.col(ColExercises)},
		DefaultExercises: &ExerciseCollection{col: s.col(ColDefaultExercises)},
		Workouts:         &WorkoutCollection{col: s.col(ColWorkouts)},
		DefaultWorkouts:  &WorkoutCollection{col: s.col(ColDefaultWorkouts)},
		Progress:         &ProgressCollection{col: s.col(ColProgressLogs)},
	}
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		{ColExercises, bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColDefaultExercises, bson.D{{Key: "created_at", Value: -1}}, false},

		{ColWorkouts, bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColDefaultWorkouts, bson.D{{Key: "created_at", Value: -1}}, false},
		{ColDefaultWorkouts, bson.D{{Key: "exercises", Value: 1}}, false},

		{ColProgressLogs, bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("mongostore: create index on %s: %w", i.col, err)
		}
	}
	return nil
}
