package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// ClientRepository persists shop clients.
type ClientRepository interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (models.Client, error)
	InsertClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, id string) error
}

// ListClients returns every client sorted by name.
func (r *MongoDBRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	cursor, err := r.collection(clientsCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}

	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return clients, nil
}

// GetClient loads one client.
func (r *MongoDBRepository) GetClient(ctx context.Context, id string) (models.Client, error) {
	var client models.Client
	err := r.collection(clientsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Client{}, models.ErrNotFound
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("find client %s: %w", id, err)
	}
	return client, nil
}

// InsertClient stores a new client.
func (r *MongoDBRepository) InsertClient(ctx context.Context, client models.Client) error {
	if _, err := r.collection(clientsCollection).InsertOne(ctx, client); err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// DeleteClient removes a client without touching its sales.
func (r *MongoDBRepository) DeleteClient(ctx context.Context, id string) error {
	return r.deleteByID(ctx, clientsCollection, id)
}
