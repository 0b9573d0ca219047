package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fittrack/api/internal/models"
)

// WorkoutCollection backs both workouts and default_workouts.
type WorkoutCollection struct {
	col *mongo.Collection
}

func (c *WorkoutCollection) Create(ctx context.Context, workout models.Workout) error {
	return insertOne(ctx, c.col, workout)
}

func (c *WorkoutCollection) GetByID(ctx context.Context, id string) (models.Workout, error) {
	return findOne[models.Workout](ctx, c.col, byID(id))
}

func (c *WorkoutCollection) List(ctx context.Context) ([]models.Workout, error) {
	return findMany[models.Workout](ctx, c.col, bson.D{}, options.Find().SetSort(newestFirst))
}

func (c *WorkoutCollection) ListByOwner(ctx context.Context, ownerID string) ([]models.Workout, error) {
	filter := bson.D{{Key: "created_by", Value: ownerID}}
	return findMany[models.Workout](ctx, c.col, filter, options.Find().SetSort(newestFirst))
}

func (c *WorkoutCollection) Update(ctx context.Context, workout models.Workout) error {
	return replaceByID(ctx, c.col, workout.ID, workout)
}

func (c *WorkoutCollection) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, c.col, id)
}

func (c *WorkoutCollection) ReferencesExercise(ctx context.Context, exerciseID string) (bool, error) {
	// An equality match on an array field matches any element.
	n, err := c.col.CountDocuments(ctx, bson.D{{Key: "exercises", Value: exerciseID}}, options.Count().SetLimit(1))
	if err != nil {
		return false, wrapError(err)
	}
	return n > 0, nil
}
