package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus buckets a product's stock level for display.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLow        StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"

	lowStockThreshold = 10
)

// Product is a catalog entry. Cost and price are in the shop currency.
type Product struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Category  string          `bson:"category" json:"category"`
	Stock     int             `bson:"stock" json:"stock"`
	Cost      decimal.Decimal `bson:"cost" json:"cost"`
	Price     decimal.Decimal `bson:"price" json:"price"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}

// Status derives the stock bucket: above 10 units is in stock, 1-10 is low.
func (p Product) Status() StockStatus {
	switch {
	case p.Stock > lowStockThreshold:
		return StockInStock
	case p.Stock > 0:
		return StockLow
	default:
		return StockOutOfStock
	}
}

// PotentialProfit is the margin still sitting on the shelf.
func (p Product) PotentialProfit() decimal.Decimal {
	return p.Price.Sub(p.Cost).Mul(decimal.NewFromInt(int64(p.Stock)))
}

// InventoryItem is a product annotated with derived stock information.
type InventoryItem struct {
	Product
	Status          StockStatus     `json:"status"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// NewInventoryItem annotates p with its derived fields.
func NewInventoryItem(p Product) InventoryItem {
	return InventoryItem{Product: p, Status: p.Status(), PotentialProfit: p.PotentialProfit()}
}

// ProductUpdate is a partial product edit; nil fields are left unchanged.
type ProductUpdate struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Stock    *int             `json:"stock"`
	Cost     *decimal.Decimal `json:"cost"`
	Price    *decimal.Decimal `json:"price"`
}

// IsEmpty reports whether the update changes nothing.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Stock == nil && u.Cost == nil && u.Price == nil
}
