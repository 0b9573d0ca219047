package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"fittrack/api/internal/models"
)

type UserCollection struct {
	col *mongo.Collection
}

func (c *UserCollection) Create(ctx context.Context, user models.User) error {
	return insertOne(ctx, c.col, user)
}

func (c *UserCollection) GetByID(ctx context.Context, id string) (models.User, error) {
	return findOne[models.User](ctx, c.col, byID(id))
}

func (c *UserCollection) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return findOne[models.User](ctx, c.col, bson.D{{Key: "email", Value: email}})
}

func (c *UserCollection) Update(ctx context.Context, user models.User) error {
	return replaceByID(ctx, c.col, user.ID, user)
}
