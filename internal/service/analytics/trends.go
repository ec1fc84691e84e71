package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// TrendWindow is the number of months in the trailing revenue series.
const TrendWindow = 6

// Trends returns revenue for the six calendar months ending with now's month,
// oldest first. Months without sales are present with zero revenue.
func (e *Engine) Trends(sales []models.Sale, now time.Time) []models.SalesTrend {
	start := e.MonthStart(now)
	monthly := make(map[string]decimal.Decimal, TrendWindow)
	for i := TrendWindow - 1; i >= 0; i-- {
		monthly[e.MonthKey(start.AddDate(0, -i, 0))] = decimal.Zero
	}

	for _, sale := range sales {
		key := e.MonthKey(sale.SaleDate)
		if revenue, ok := monthly[key]; ok {
			monthly[key] = revenue.Add(sale.TotalAmount)
		}
	}

	keys := make([]string, 0, len(monthly))
	for key := range monthly {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	trends := make([]models.SalesTrend, 0, len(keys))
	for _, key := range keys {
		month, err := e.ParseMonthKey(key)
		if err != nil {
			continue
		}
		trends = append(trends, models.SalesTrend{
			Month:    ShortMonthLabel(month),
			Revenue:  monthly[key],
			MonthKey: key,
		})
	}
	return trends
}
