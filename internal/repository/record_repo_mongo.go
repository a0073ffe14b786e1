package repository

import (
	"context"
	"fmt"
	"time"

	"really-simple-feedback/internal/database"
	"really-simple-feedback/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type recordDocument struct {
	ID         bson.ObjectID     `bson:"_id,omitempty"`
	Category   string            `bson:"category"`
	Attributes map[string]string `bson:"attributes"`
	CreatedAt  time.Time         `bson:"created_at"`
}

func (d *recordDocument) toModel() *models.Record {
	attrs := d.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &models.Record{
		ID:         d.ID.Hex(),
		Category:   d.Category,
		Attributes: attrs,
		CreatedAt:  d.CreatedAt,
	}
}

type MongoRecordRepo struct {
	collection *mongo.Collection
}

func NewMongoRecordRepo() *MongoRecordRepo {
	return &MongoRecordRepo{
		collection: database.GetCollection("records"),
	}
}

// Create inserts the record with all attributes in a single document write.
func (r *MongoRecordRepo) Create(ctx context.Context, category string, attributes map[string]string) (string, error) {
	doc := recordDocument{
		Category:   category,
		Attributes: attributes,
		CreatedAt:  time.Now().UTC(),
	}
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	return result.InsertedID.(bson.ObjectID).Hex(), nil
}

func (r *MongoRecordRepo) Get(ctx context.Context, id string) (*models.Record, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc recordDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRecordRepo) SetAttribute(ctx context.Context, id, key, value string) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"attributes." + key: value}})
}

func (r *MongoRecordRepo) DeleteAttribute(ctx context.Context, id, key string) error {
	return r.update(ctx, id, bson.M{"$unset": bson.M{"attributes." + key: ""}})
}

func (r *MongoRecordRepo) update(ctx context.Context, id string, update bson.M) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns records of a category, newest first.
func (r *MongoRecordRepo) List(ctx context.Context, category string) ([]*models.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []recordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	records := make([]*models.Record, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toModel())
	}
	return records, nil
}

// EnsureIndexes creates necessary indexes for the records collection
func (r *MongoRecordRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
