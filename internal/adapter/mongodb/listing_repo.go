// Package mongodb is an alternative listing store selectable via
// storage.driver: mongo. It keeps the same full-read/full-replace contract as
// the JSON file store; the delete-then-insert in WriteAll is not atomic, which
// the single-writer deployment assumption covers.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/staymarket/listing-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const collectionName = "listings"

type ListingRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func Connect(ctx context.Context, uri string, timeout time.Duration, logger *zap.Logger) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect to %s: %w", uri, err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongodb: ping %s: %w", uri, err)
	}
	logger.Info("Connected to MongoDB", zap.String("uri", uri))
	return client, nil
}

func NewListingRepository(db *mongo.Database, logger *zap.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection(collectionName),
		logger:     logger,
	}
}

func (r *ListingRepository) ReadAll(ctx context.Context) ([]entity.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb.ReadAll: %w", err)
	}
	var listings []entity.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("mongodb.ReadAll: decode: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) WriteAll(ctx context.Context, listings []entity.Listing) error {
	if _, err := r.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("mongodb.WriteAll: clear: %w", err)
	}
	if len(listings) == 0 {
		return nil
	}
	docs := make([]any, 0, len(listings))
	for _, l := range listings {
		docs = append(docs, l)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongodb.WriteAll: insert: %w", err)
	}
	r.logger.Debug("Replaced listing collection", zap.Int("count", len(listings)))
	return nil
}
