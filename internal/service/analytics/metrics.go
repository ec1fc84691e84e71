package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// Metrics summarises the calendar month containing now. Sales dated on or
// after the first of that month count as current. When there are none the
// zero record is returned, previous month included.
func (e *Engine) Metrics(sales []models.Sale, products []models.Product, now time.Time) models.SalesMetrics {
	currentStart := e.MonthStart(now)
	previousStart := currentStart.AddDate(0, -1, 0)

	current := make([]models.Sale, 0, len(sales))
	for _, sale := range sales {
		if !sale.SaleDate.Before(currentStart) {
			current = append(current, sale)
		}
	}

	if len(current) == 0 {
		return zeroMetrics()
	}

	index := models.IndexProducts(products)
	grossProfit := decimal.Zero
	totalCost := decimal.Zero
	clients := make(map[string]struct{}, len(current))

	for _, sale := range current {
		grossProfit = grossProfit.Add(sale.TotalAmount)
		totalCost = totalCost.Add(e.saleCost(sale, index))
		clients[sale.ClientID] = struct{}{}
	}

	previousRevenue := decimal.Zero
	for _, sale := range sales {
		if !sale.SaleDate.Before(previousStart) && sale.SaleDate.Before(currentStart) {
			previousRevenue = previousRevenue.Add(sale.TotalAmount)
		}
	}

	totalRevenue := grossProfit.Add(totalCost)

	return models.SalesMetrics{
		TotalRevenue:         totalRevenue,
		PreviousMonthRevenue: previousRevenue,
		ActiveClients:        len(clients),
		TotalSales:           len(current),
		TotalCost:            totalCost,
		GrossProfit:          grossProfit,
		ProfitMargin:         margin(grossProfit, totalRevenue),
	}
}

func zeroMetrics() models.SalesMetrics {
	return models.SalesMetrics{
		TotalRevenue:         decimal.Zero,
		PreviousMonthRevenue: decimal.Zero,
		TotalCost:            decimal.Zero,
		GrossProfit:          decimal.Zero,
		ProfitMargin:         decimal.Zero,
	}
}
