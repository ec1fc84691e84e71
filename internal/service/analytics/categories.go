package analytics

import (
	"sort"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// TopCategories caps the popular categories list.
const TopCategories = 5

const fallbackFill = "hsl(var(--chart-3))"

var categoryFills = map[string]string{
	"Peixes":       "hsl(var(--chart-1))",
	"Plantas":      "hsl(var(--chart-2))",
	"Aquários":     "hsl(var(--chart-3))",
	"Alimentação":  "hsl(var(--chart-4))",
	"Equipamentos": "hsl(var(--chart-5))",
	"Decoração":    "hsl(var(--chart-1))",
	"Outros":       "hsl(var(--chart-2))",
}

// CategoryFill returns the chart colour for a category.
func CategoryFill(category string) string {
	if fill, ok := categoryFills[category]; ok {
		return fill
	}
	return fallbackFill
}

// PopularCategories ranks product categories by units sold across sales and
// keeps the top five. Ties keep first-seen order. Line items whose product is
// missing, or has no category, are skipped.
func (e *Engine) PopularCategories(sales []models.Sale, products []models.Product) []models.CategorySales {
	if len(sales) == 0 || len(products) == 0 {
		return []models.CategorySales{}
	}

	index := models.IndexProducts(products)
	units := make(map[string]int)
	var order []string

	for _, sale := range sales {
		for _, item := range sale.Products {
			product, ok := index[item.ProductID]
			if !ok || product.Category == "" || item.Quantity <= 0 {
				continue
			}
			if _, seen := units[product.Category]; !seen {
				order = append(order, product.Category)
			}
			units[product.Category] += item.Quantity
		}
	}

	ranked := make([]models.CategorySales, 0, len(order))
	for _, category := range order {
		ranked = append(ranked, models.CategorySales{
			Category: category,
			Sales:    units[category],
			Fill:     CategoryFill(category),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales > ranked[j].Sales
	})

	if len(ranked) > TopCategories {
		ranked = ranked[:TopCategories]
	}
	return ranked
}
