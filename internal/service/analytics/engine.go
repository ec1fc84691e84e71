// Package analytics derives the dashboard's reporting views from in-memory
// snapshots of the product, client and sale collections. Every function is
// total: dangling references contribute zero and empty inputs yield zeroed or
// empty results.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// CostPolicy selects where a line item's unit cost comes from.
type CostPolicy string

const (
	// CostPolicyCurrent joins each line item against the product's current
	// cost, so past months move when a cost is edited.
	CostPolicyCurrent CostPolicy = "current"
	// CostPolicySnapshot uses the unit cost recorded on the line item and falls
	// back to the current cost for sales recorded without one.
	CostPolicySnapshot CostPolicy = "snapshot"
)

const monthKeyLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

// ParseCostPolicy validates a configured policy name.
func ParseCostPolicy(value string) (CostPolicy, error) {
	switch CostPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", CostPolicyCurrent:
		return CostPolicyCurrent, nil
	case CostPolicySnapshot:
		return CostPolicySnapshot, nil
	default:
		return "", fmt.Errorf("unknown cost policy %q", value)
	}
}

// Engine computes reporting views. It holds no state besides its settings and
// is safe for concurrent use.
type Engine struct {
	policy CostPolicy
	loc    *time.Location
}

// New builds an engine. A nil location means time.Local.
func New(policy CostPolicy, loc *time.Location) *Engine {
	if policy == "" {
		policy = CostPolicyCurrent
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{policy: policy, loc: loc}
}

// Policy reports the configured cost policy.
func (e *Engine) Policy() CostPolicy {
	return e.policy
}

// Location reports the calendar used for month bucketing.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// MonthKey returns the canonical year-month key of t in the engine's calendar.
func (e *Engine) MonthKey(t time.Time) string {
	return t.In(e.loc).Format(monthKeyLayout)
}

// MonthStart returns midnight on the first day of t's month.
func (e *Engine) MonthStart(t time.Time) time.Time {
	local := t.In(e.loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, e.loc)
}

// ParseMonthKey returns the first instant of the month named by key.
func (e *Engine) ParseMonthKey(key string) (time.Time, error) {
	return time.ParseInLocation(monthKeyLayout, key, e.loc)
}

func (e *Engine) saleCost(sale models.Sale, products map[string]models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, item := range sale.Products {
		total = total.Add(e.unitCost(item, products).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (e *Engine) unitCost(item models.LineItem, products map[string]models.Product) decimal.Decimal {
	if e.policy == CostPolicySnapshot && item.UnitCost != nil {
		return *item.UnitCost
	}
	if product, ok := products[item.ProductID]; ok {
		return product.Cost
	}
	return decimal.Zero
}

func margin(grossProfit, totalRevenue decimal.Decimal) decimal.Decimal {
	if !totalRevenue.IsPositive() {
		return decimal.Zero
	}
	return grossProfit.Div(totalRevenue).Mul(hundred)
}
