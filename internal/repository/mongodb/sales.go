package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// SaleRepository persists sales.
type SaleRepository interface {
	ListSales(ctx context.Context) ([]models.Sale, error)
	ListSalesByClient(ctx context.Context, clientID string) ([]models.Sale, error)
	InsertSaleWithStock(ctx context.Context, sale models.Sale) error
	DeleteSale(ctx context.Context, id string) error
}

var newestFirst = bson.D{{Key: "sale_date", Value: -1}}

// ListSales returns every sale, newest first.
func (r *MongoDBRepository) ListSales(ctx context.Context) ([]models.Sale, error) {
	return r.findSales(ctx, bson.M{})
}

// ListSalesByClient returns a client's sales, newest first.
func (r *MongoDBRepository) ListSalesByClient(ctx context.Context, clientID string) ([]models.Sale, error) {
	return r.findSales(ctx, bson.M{"client_id": clientID})
}

func (r *MongoDBRepository) findSales(ctx context.Context, filter bson.M) ([]models.Sale, error) {
	cursor, err := r.collection(salesCollection).Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}

	sales := []models.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return sales, nil
}

// InsertSaleWithStock records the sale and decrements the stock of every
// referenced product in a single transaction. If any product no longer has
// enough units the whole write is aborted with models.ErrInsufficientStock.
func (r *MongoDBRepository) InsertSaleWithStock(ctx context.Context, sale models.Sale) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection(salesCollection).InsertOne(sc, sale); err != nil {
			return nil, fmt.Errorf("insert sale: %w", err)
		}

		now := time.Now().UTC()
		products := r.collection(productsCollection)
		for _, item := range sale.Products {
			res, err := products.UpdateOne(sc,
				bson.M{"_id": item.ProductID, "stock": bson.M{"$gte": item.Quantity}},
				bson.M{
					"$inc": bson.M{"stock": -item.Quantity},
					"$set": bson.M{"updated_at": now},
				})
			if err != nil {
				return nil, fmt.Errorf("decrement stock of %s: %w", item.ProductID, err)
			}
			if res.MatchedCount == 0 {
				return nil, fmt.Errorf("product %s: %w", item.ProductID, models.ErrInsufficientStock)
			}
		}
		return nil, nil
	})
	return err
}

// DeleteSale removes a sale. Stock decremented by the sale is not restored.
func (r *MongoDBRepository) DeleteSale(ctx context.Context, id string) error {
	return r.deleteByID(ctx, salesCollection, id)
}
