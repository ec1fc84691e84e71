package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

func TestPopularCategories_RanksByUnits(t *testing.T) {
	products := []models.Product{
		product("tetra", "Peixes", "1"),
		product("moss", "Plantas", "1"),
		product("tank", "Aquários", "1"),
	}
	sales := []models.Sale{
		sale("s1", "c1", date(2024, time.March, 1), "0", item("moss", 2, "1"), item("tetra", 1, "1")),
		sale("s2", "c1", date(2024, time.March, 2), "0", item("tetra", 5, "1"), item("tank", 2, "1")),
	}

	ranked := newTestEngine().PopularCategories(sales, products)

	require.Len(t, ranked, 3)
	assert.Equal(t, models.CategorySales{Category: "Peixes", Sales: 6, Fill: "hsl(var(--chart-1))"}, ranked[0])
	// Plantas and Aquários tie at 2; Plantas was seen first.
	assert.Equal(t, "Plantas", ranked[1].Category)
	assert.Equal(t, "Aquários", ranked[2].Category)
}

func TestPopularCategories_TopFiveAndFallbackFill(t *testing.T) {
	var products []models.Product
	var items []models.LineItem
	for i := 1; i <= 7; i++ {
		id := fmt.Sprintf("p%d", i)
		products = append(products, product(id, fmt.Sprintf("Cat%d", i), "1"))
		items = append(items, item(id, i, "1"))
	}
	sales := []models.Sale{sale("s1", "c1", date(2024, time.March, 1), "0", items...)}

	ranked := newTestEngine().PopularCategories(sales, products)

	require.Len(t, ranked, TopCategories)
	assert.Equal(t, "Cat7", ranked[0].Category)
	assert.Equal(t, "Cat3", ranked[4].Category)
	for _, entry := range ranked {
		assert.Equal(t, fallbackFill, entry.Fill)
		assert.Positive(t, entry.Sales)
	}
}

func TestPopularCategories_SkipsDanglingProducts(t *testing.T) {
	products := []models.Product{product("tetra", "Peixes", "1")}
	sales := []models.Sale{
		sale("s1", "c1", date(2024, time.March, 1), "0", item("deleted", 3, "1"), item("deleted", 4, "1")),
	}

	ranked := newTestEngine().PopularCategories(sales, products)

	assert.Empty(t, ranked)
	assert.NotNil(t, ranked)
}

func TestPopularCategories_EmptyInputs(t *testing.T) {
	engine := newTestEngine()
	sales, products := marchFixture()

	assert.Empty(t, engine.PopularCategories(nil, products))
	assert.Empty(t, engine.PopularCategories(sales, nil))
}
