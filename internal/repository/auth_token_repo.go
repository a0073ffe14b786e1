package repository

import (
	"context"
	"time"

	"really-simple-feedback/internal/database"
	"really-simple-feedback/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoAuthTokenRepo struct {
	collection *mongo.Collection
}

func NewMongoAuthTokenRepo() *MongoAuthTokenRepo {
	return &MongoAuthTokenRepo{
		collection: database.GetCollection("auth_tokens"),
	}
}

func (r *MongoAuthTokenRepo) Create(ctx context.Context, token *models.AuthToken) error {
	token.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, token)
	return err
}

func (r *MongoAuthTokenRepo) FindByToken(ctx context.Context, token string) (*models.AuthToken, error) {
	var authToken models.AuthToken
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&authToken)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &authToken, nil
}

func (r *MongoAuthTokenRepo) MarkUsed(ctx context.Context, token string) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"token": token, "is_used": false}, bson.M{
		"$set": bson.M{"is_used": true},
	})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// EnsureIndexes creates necessary indexes for the auth_tokens collection
func (r *MongoAuthTokenRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index, expired tokens are removed
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
