package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fittrack/api/internal/models"
)

type ProgressCollection struct {
	col *mongo.Collection
}

func (c *ProgressCollection) Create(ctx context.Context, log models.ProgressLog) error {
	return insertOne(ctx, c.col, log)
}

func (c *ProgressCollection) GetByID(ctx context.Context, id string) (models.ProgressLog, error) {
	return findOne[models.ProgressLog](ctx, c.col, byID(id))
}

func (c *ProgressCollection) ListByUser(ctx context.Context, userID string, completedOnly bool) ([]models.ProgressLog, error) {
	filter := bson.D{{Key: "user_id", Value: userID}}
	if completedOnly {
		filter = append(filter, bson.E{Key: "completed", Value: true})
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	return findMany[models.ProgressLog](ctx, c.col, filter, opts)
}

func (c *ProgressCollection) Update(ctx context.Context, log models.ProgressLog) error {
	return replaceByID(ctx, c.col, log.ID, log)
}

func (c *ProgressCollection) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, c.col, id)
}
