package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, saoPaulo)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func item(productID string, quantity int, unitPrice string) models.LineItem {
	return models.LineItem{ProductID: productID, Quantity: quantity, UnitPrice: dec(unitPrice)}
}

func sale(id, clientID string, at time.Time, total string, items ...models.LineItem) models.Sale {
	return models.Sale{ID: id, ClientID: clientID, SaleDate: at, TotalAmount: dec(total), Products: items}
}

func product(id, category, cost string) models.Product {
	return models.Product{ID: id, Name: id, Category: category, Cost: dec(cost), Price: dec(cost).Mul(decimal.NewFromInt(2))}
}

func newTestEngine() *Engine {
	return New(CostPolicyCurrent, saoPaulo)
}

// marchFixture: March line items cost 60 in total, February sale totals 80.
func marchFixture() ([]models.Sale, []models.Product) {
	products := []models.Product{
		product("tetra", "Peixes", "10"),
		product("filter", "Equipamentos", "20"),
	}
	sales := []models.Sale{
		sale("s1", "c1", date(2024, time.March, 5), "100", item("tetra", 4, "25")),
		sale("s2", "c2", date(2024, time.March, 20), "50", item("filter", 1, "50")),
		sale("s3", "c1", date(2024, time.February, 10), "80", item("tetra", 2, "40")),
	}
	return sales, products
}
