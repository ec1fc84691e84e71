package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// MonthlyReports groups the whole sales history by calendar month and returns
// one rollup per month that has sales, newest first. Months without sales are
// not filled in.
func (e *Engine) MonthlyReports(sales []models.Sale, products []models.Product) []models.MonthlyReport {
	index := models.IndexProducts(products)
	byMonth := make(map[string]*models.MonthlyReport)

	for _, sale := range sales {
		key := e.MonthKey(sale.SaleDate)
		report, ok := byMonth[key]
		if !ok {
			start := e.MonthStart(sale.SaleDate)
			report = &models.MonthlyReport{
				MonthKey:    key,
				Month:       LongMonthLabel(start),
				MonthStart:  start,
				GrossProfit: decimal.Zero,
				TotalCost:   decimal.Zero,
			}
			byMonth[key] = report
		}

		report.GrossProfit = report.GrossProfit.Add(sale.TotalAmount)
		report.TotalCost = report.TotalCost.Add(e.saleCost(sale, index))
		report.SalesCount++
	}

	reports := make([]models.MonthlyReport, 0, len(byMonth))
	for _, report := range byMonth {
		report.TotalRevenue = report.GrossProfit.Add(report.TotalCost)
		report.ProfitMargin = margin(report.GrossProfit, report.TotalRevenue)
		reports = append(reports, *report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].MonthKey > reports[j].MonthKey
	})
	return reports
}

// MonthlyReport returns the rollup for a single month key, if it has sales.
func (e *Engine) MonthlyReport(sales []models.Sale, products []models.Product, key string) (models.MonthlyReport, bool) {
	for _, report := range e.MonthlyReports(sales, products) {
		if report.MonthKey == key {
			return report, true
		}
	}
	return models.MonthlyReport{}, false
}
