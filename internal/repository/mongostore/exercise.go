package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fittrack/api/internal/models"
)

// ExerciseCollection backs both exercises and default_exercises.
type ExerciseCollection struct {
	col *mongo.Collection
}

func (c *ExerciseCollection) Create(ctx context.Context, exercise models.Exercise) error {
	return insertOne(ctx, c.col, exercise)
}

func (c *ExerciseCollection) GetByID(ctx context.Context, id string) (models.Exercise, error) {
	return findOne[models.Exercise](ctx, c.col, byID(id))
}

func (c *ExerciseCollection) FindByIDs(ctx context.Context, ids []string) ([]models.Exercise, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	return findMany[models.Exercise](ctx, c.col, filter)
}

func (c *ExerciseCollection) List(ctx context.Context) ([]models.Exercise, error) {
	return findMany[models.Exercise](ctx, c.col, bson.D{}, options.Find().SetSort(newestFirst))
}

func (c *ExerciseCollection) ListByOwner(ctx context.Context, ownerID string) ([]models.Exercise, error) {
	filter := bson.D{{Key: "created_by", Value: ownerID}}
	return findMany[models.Exercise](ctx, c.col, filter, options.Find().SetSort(newestFirst))
}

func (c *ExerciseCollection) Update(ctx context.Context, exercise models.Exercise) error {
	return replaceByID(ctx, c.col, exercise.ID, exercise)
}

func (c *ExerciseCollection) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, c.col, id)
}
