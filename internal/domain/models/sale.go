package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one product/quantity/price entry of a sale. UnitPrice is frozen at
// sale time; UnitCost is recorded too but only read under the snapshot cost policy.
type LineItem struct {
	ProductID string           `bson:"product_id" json:"product_id"`
	Quantity  int              `bson:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal  `bson:"unit_price" json:"unit_price"`
	UnitCost  *decimal.Decimal `bson:"unit_cost,omitempty" json:"unit_cost,omitempty"`
}

// Subtotal returns quantity * unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Sale is an append-only record of a completed sale.
type Sale struct {
	ID          string          `bson:"_id" json:"id"`
	ClientID    string          `bson:"client_id" json:"client_id"`
	SaleDate    time.Time       `bson:"sale_date" json:"sale_date"`
	TotalAmount decimal.Decimal `bson:"total_amount" json:"total_amount"`
	Products    []LineItem      `bson:"products" json:"products"`
}

// DetailedLineItem pairs a line item with the product it references.
type DetailedLineItem struct {
	LineItem
	Product Product `json:"product"`
}

// SaleDetails is a sale whose line items are resolved against the catalog.
type SaleDetails struct {
	ID          string             `json:"id"`
	ClientID    string             `json:"client_id"`
	SaleDate    time.Time          `json:"sale_date"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Products    []DetailedLineItem `json:"products"`
}

// MissingProductName labels line items whose product no longer exists.
const MissingProductName = "Produto não encontrado"

// MissingProductCategory is the category given to placeholder products.
const MissingProductCategory = "Outros"

// ResolveSale joins a sale's line items against products, substituting a
// zero-valued placeholder for dangling references.
func ResolveSale(sale Sale, products map[string]Product) SaleDetails {
	details := SaleDetails{
		ID:          sale.ID,
		ClientID:    sale.ClientID,
		SaleDate:    sale.SaleDate,
		TotalAmount: sale.TotalAmount,
		Products:    make([]DetailedLineItem, 0, len(sale.Products)),
	}
	for _, item := range sale.Products {
		product, ok := products[item.ProductID]
		if !ok {
			product = Product{Name: MissingProductName, Category: MissingProductCategory}
		}
		details.Products = append(details.Products, DetailedLineItem{LineItem: item, Product: product})
	}
	return details
}

// IndexProducts maps products by id.
func IndexProducts(products []Product) map[string]Product {
	index := make(map[string]Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// SortNewestFirst orders sale details by sale date, most recent first.
func SortNewestFirst(sales []SaleDetails) {
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].SaleDate.After(sales[j].SaleDate)
	})
}
