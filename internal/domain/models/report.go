package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics summarises the current calendar month. TotalRevenue is defined
// as GrossProfit + TotalCost.
type SalesMetrics struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	PreviousMonthRevenue decimal.Decimal `json:"previous_month_revenue"`
	ActiveClients        int             `json:"active_clients"`
	TotalSales           int             `json:"total_sales"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	GrossProfit          decimal.Decimal `json:"gross_profit"`
	ProfitMargin         decimal.Decimal `json:"profit_margin"`
}

// SalesTrend is one month of the trailing revenue window.
type SalesTrend struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	MonthKey string          `json:"month_key"`
}

// CategorySales is units sold for one product category.
type CategorySales struct {
	Category string `json:"category"`
	Sales    int    `json:"sales"`
	Fill     string `json:"fill"`
}

// MonthlyReport is the financial rollup of one calendar month.
type MonthlyReport struct {
	MonthKey     string          `bson:"_id" json:"month_key"`
	Month        string          `bson:"month" json:"month"`
	MonthStart   time.Time       `bson:"month_start" json:"month_start"`
	TotalRevenue decimal.Decimal `bson:"total_revenue" json:"total_revenue"`
	TotalCost    decimal.Decimal `bson:"total_cost" json:"total_cost"`
	GrossProfit  decimal.Decimal `bson:"gross_profit" json:"gross_profit"`
	ProfitMargin decimal.Decimal `bson:"profit_margin" json:"profit_margin"`
	SalesCount   int             `bson:"sales_count" json:"sales_count"`
}

// MonthlyReportSnapshot is a closed month persisted by the monthly close job.
type MonthlyReportSnapshot struct {
	MonthlyReport `bson:",inline"`
	CostPolicy    string    `bson:"cost_policy" json:"cost_policy"`
	ClosedAt      time.Time `bson:"closed_at" json:"closed_at"`
}

// Dashboard bundles the views rendered on the main page.
type Dashboard struct {
	Metrics           SalesMetrics    `json:"metrics"`
	Trends            []SalesTrend    `json:"trends"`
	PopularCategories []CategorySales `json:"popular_categories"`
	Inventory         []InventoryItem `json:"inventory"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

// SalesInsights carries the AI narrative. Error is set when generation failed
// and Insights is empty.
type SalesInsights struct {
	Insights string `json:"insights,omitempty"`
	Error    string `json:"error,omitempty"`
}
