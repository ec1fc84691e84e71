package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection       = "products"
	clientsCollection        = "clients"
	salesCollection          = "sales"
	monthlyReportsCollection = "monthly_reports"
)

// MongoDBRepository is the document-store backend for the catalog, clients,
// sales and closed monthly reports. It satisfies ProductRepository,
// ClientRepository, SaleRepository and ReportRepository.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects to MongoDB and verifies the connection. Sale
// registration uses multi-document transactions, which need a replica set.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri).SetRegistry(NewRegistry())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// EnsureIndexes creates the secondary indexes the queries rely on.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		productsCollection: {{Keys: bson.D{{Key: "name", Value: 1}}}},
		clientsCollection:  {{Keys: bson.D{{Key: "name", Value: 1}}}},
		salesCollection: {
			{Keys: bson.D{{Key: "sale_date", Value: -1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "sale_date", Value: -1}}},
		},
	}

	for collection, idx := range indexes {
		if _, err := r.db.Collection(collection).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.db.Collection(name)
}
