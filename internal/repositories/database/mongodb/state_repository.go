package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/isp_bookkeeping_app/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "app_state"

// MongoStateRepository keeps one document per collection key in the app_state collection.
type MongoStateRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ portsrepo.StateRepositoryFacade = (*MongoStateRepository)(nil)

// NewMongoStateRepository uses database on an already connected client. Close disconnects the client.
func NewMongoStateRepository(client *mongo.Client, database string) *MongoStateRepository {
	return &MongoStateRepository{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}
}

func (r *MongoStateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc models.AppState
	err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find state %s: %w", key, err)
	}
	return doc.Value, nil
}

func (r *MongoStateRepository) Set(ctx context.Context, key string, blob []byte) error {
	update := bson.M{"$set": bson.M{
		"value":      blob,
		"updated_at": time.Now().UTC(),
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

func (r *MongoStateRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
