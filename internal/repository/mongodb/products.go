package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// ProductRepository persists the product catalog.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	InsertProduct(ctx context.Context, product models.Product) error
	UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ListProducts returns the whole catalog sorted by name.
func (r *MongoDBRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection(productsCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// GetProduct loads one product.
func (r *MongoDBRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := r.collection(productsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, models.ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return product, nil
}

// InsertProduct stores a new product.
func (r *MongoDBRepository) InsertProduct(ctx context.Context, product models.Product) error {
	if _, err := r.collection(productsCollection).InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// UpdateProduct applies the non-nil fields of update and returns the updated
// document.
func (r *MongoDBRepository) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.Product, error) {
	fields := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.Stock != nil {
		fields["stock"] = *update.Stock
	}
	if update.Cost != nil {
		fields["cost"] = *update.Cost
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.collection(productsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).
		Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, models.ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	return product, nil
}

// DeleteProduct removes a product. Sales referencing it are left untouched.
func (r *MongoDBRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.deleteByID(ctx, productsCollection, id)
}

func (r *MongoDBRepository) deleteByID(ctx context.Context, collection, id string) error {
	res, err := r.collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
