package mongodb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

func TestRegistry_DecimalStoredAsDecimal128(t *testing.T) {
	registry := NewRegistry()
	product := models.Product{ID: "p1", Name: "Tetra", Cost: decimal.RequireFromString("12.35"), Price: decimal.NewFromInt(30)}

	raw, err := bson.MarshalWithRegistry(registry, product)
	require.NoError(t, err)

	cost := bson.Raw(raw).Lookup("cost")
	assert.Equal(t, bson.TypeDecimal128, cost.Type)

	var decoded models.Product
	require.NoError(t, bson.UnmarshalWithRegistry(registry, raw, &decoded))
	assert.True(t, product.Cost.Equal(decoded.Cost))
	assert.True(t, product.Price.Equal(decoded.Price))
}

func TestRegistry_DecodesLegacyNumericTypes(t *testing.T) {
	registry := NewRegistry()
	raw, err := bson.Marshal(bson.M{
		"_id":   "p1",
		"cost":  12.5,
		"price": int32(30),
	})
	require.NoError(t, err)

	var decoded models.Product
	require.NoError(t, bson.UnmarshalWithRegistry(registry, raw, &decoded))
	assert.Equal(t, "12.5", decoded.Cost.String())
	assert.Equal(t, "30", decoded.Price.String())
}

func TestRegistry_OptionalUnitCost(t *testing.T) {
	registry := NewRegistry()
	cost := decimal.NewFromInt(4)
	sale := models.Sale{
		ID:          "s1",
		SaleDate:    time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(10),
		Products: []models.LineItem{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(5), UnitCost: &cost},
			{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}

	raw, err := bson.MarshalWithRegistry(registry, sale)
	require.NoError(t, err)

	var decoded models.Sale
	require.NoError(t, bson.UnmarshalWithRegistry(registry, raw, &decoded))
	require.Len(t, decoded.Products, 2)
	require.NotNil(t, decoded.Products[0].UnitCost)
	assert.True(t, cost.Equal(*decoded.Products[0].UnitCost))
	assert.Nil(t, decoded.Products[1].UnitCost)

	d128, err := primitive.ParseDecimal128("10")
	require.NoError(t, err)
	assert.Equal(t, d128, bson.Raw(raw).Lookup("total_amount").Decimal128())
}
