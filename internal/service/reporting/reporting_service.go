// Package reporting serves the dashboard and billing views. It keeps a snapshot
// of the product and sale collections in memory and recomputes every view from
// it, dropping the snapshot whenever a write is confirmed.
package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	repo "github.com/mamadbah2/aquashop/internal/repository/mongodb"
	"github.com/mamadbah2/aquashop/internal/repository/sheets"
	"github.com/mamadbah2/aquashop/internal/service/analytics"
)

const (
	billingSheetRange = "Billing!A1"
	closingSheetRange = "Billing Closures!A:F"
	percentPlaces     = 2
)

var (
	// ErrInvalidMonth indicates a month key that is not YYYY-MM.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrSheetsDisabled is returned by exports when no spreadsheet is configured.
	ErrSheetsDisabled = errors.New("google sheets export is not configured")
)

type snapshot struct {
	products []models.Product
	sales    []models.Sale
}

// Service exposes the reporting views.
type Service struct {
	products repo.ProductRepository
	sales    repo.SaleRepository
	reports  repo.ReportRepository
	sheets   sheets.Repository
	engine   *analytics.Engine
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.RWMutex
	cached     *snapshot
	generation uint64
}

// NewService wires a new reporting service instance. sheetRepo may be nil.
func NewService(products repo.ProductRepository, sales repo.SaleRepository, reports repo.ReportRepository, sheetRepo sheets.Repository, engine *analytics.Engine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products: products,
		sales:    sales,
		reports:  reports,
		sheets:   sheetRepo,
		engine:   engine,
		logger:   logger,
		now:      time.Now,
	}
}

// Invalidate drops the cached snapshot. The next read reloads it.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.generation++
	s.mu.Unlock()
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	cached, generation := s.cached, s.generation
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	sales, err := s.sales.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	snap := &snapshot{products: products, sales: sales}

	s.mu.Lock()
	// A write landed while loading; serve what was read but do not keep it.
	if s.generation == generation {
		s.cached = snap
	}
	s.mu.Unlock()

	s.logger.Debug("reporting snapshot loaded", zap.Int("products", len(products)), zap.Int("sales", len(sales)))
	return snap, nil
}

// Dashboard returns the current month's metrics, the six month trend, the top
// categories and the inventory with stock status.
func (s *Service) Dashboard(ctx context.Context) (models.Dashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}

	now := s.now()
	inventory := make([]models.InventoryItem, 0, len(snap.products))
	for _, p := range snap.products {
		inventory = append(inventory, models.NewInventoryItem(p))
	}

	return models.Dashboard{
		Metrics:           s.engine.Metrics(snap.sales, snap.products, now),
		Trends:            s.engine.Trends(snap.sales, now),
		PopularCategories: s.engine.PopularCategories(snap.sales, snap.products),
		Inventory:         inventory,
		GeneratedAt:       now.UTC(),
	}, nil
}

// Metrics returns only the current month's summary.
func (s *Service) Metrics(ctx context.Context) (models.SalesMetrics, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return models.SalesMetrics{}, err
	}
	return s.engine.Metrics(snap.sales, snap.products, s.now()), nil
}

// Billing returns one report per month with sales, newest first.
func (s *Service) Billing(ctx context.Context) ([]models.MonthlyReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.MonthlyReports(snap.sales, snap.products), nil
}

// BillingCSV renders one month's report as a two column CSV and suggests a
// file name for it.
func (s *Service) BillingCSV(ctx context.Context, monthKey string) (string, []byte, error) {
	if _, err := s.engine.ParseMonthKey(monthKey); err != nil {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidMonth, monthKey)
	}
	snap, err := s.load(ctx)
	if err != nil {
		return "", nil, err
	}
	report, ok := s.engine.MonthlyReport(snap.sales, snap.products, monthKey)
	if !ok {
		return "", nil, fmt.Errorf("billing %s: %w", monthKey, models.ErrNotFound)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{
		{"Metrica", "Valor"},
		{"Mês do Relatório", report.Month},
		{"Receita do Mês", analytics.FormatBRL(report.TotalRevenue)},
		{"Custo dos Produtos", analytics.FormatBRL(report.TotalCost)},
		{"Lucro Bruto", analytics.FormatBRL(report.GrossProfit)},
		{"Margem de Lucro", analytics.FormatPercent(report.ProfitMargin, percentPlaces)},
	}
	if err := w.WriteAll(rows); err != nil {
		return "", nil, fmt.Errorf("write csv: %w", err)
	}

	filename := fmt.Sprintf("relatorio_%s.csv", strings.ReplaceAll(report.Month, ", ", "_"))
	return filename, buf.Bytes(), nil
}

// ExportBilling overwrites the billing sheet with every monthly report and
// returns how many months were written.
func (s *Service) ExportBilling(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, ErrSheetsDisabled
	}
	reports, err := s.Billing(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([][]interface{}, 0, len(reports)+1)
	rows = append(rows, []interface{}{"Mês", "Chave", "Receita", "Custo", "Lucro Bruto", "Margem (%)", "Vendas"})
	for _, r := range reports {
		rows = append(rows, []interface{}{
			r.Month,
			r.MonthKey,
			r.TotalRevenue.Round(2).InexactFloat64(),
			r.TotalCost.Round(2).InexactFloat64(),
			r.GrossProfit.Round(2).InexactFloat64(),
			r.ProfitMargin.Round(percentPlaces).InexactFloat64(),
			r.SalesCount,
		})
	}

	if err := s.sheets.ReplaceRange(ctx, billingSheetRange, rows); err != nil {
		return 0, fmt.Errorf("export billing: %w", err)
	}
	s.logger.Info("billing exported to sheets", zap.Int("months", len(reports)))
	return len(reports), nil
}

// CloseMonth freezes the report of the month before now and stores it. A month
// without sales is closed with zero totals.
func (s *Service) CloseMonth(ctx context.Context, now time.Time) (models.MonthlyReportSnapshot, error) {
	start := s.engine.MonthStart(now).AddDate(0, -1, 0)
	key := s.engine.MonthKey(start)

	snap, err := s.load(ctx)
	if err != nil {
		return models.MonthlyReportSnapshot{}, err
	}

	report, ok := s.engine.MonthlyReport(snap.sales, snap.products, key)
	if !ok {
		report = models.MonthlyReport{MonthKey: key, Month: analytics.LongMonthLabel(start), MonthStart: start}
	}
	closed := models.MonthlyReportSnapshot{
		MonthlyReport: report,
		CostPolicy:    string(s.engine.Policy()),
		ClosedAt:      now.UTC(),
	}

	if err := s.reports.SaveMonthlyReport(ctx, closed); err != nil {
		return models.MonthlyReportSnapshot{}, fmt.Errorf("save monthly report %s: %w", key, err)
	}
	s.logger.Info("month closed", zap.String("month", key), zap.Int("sales", report.SalesCount))

	if s.sheets != nil {
		row := []interface{}{
			report.MonthKey,
			report.Month,
			report.TotalRevenue.Round(2).InexactFloat64(),
			report.TotalCost.Round(2).InexactFloat64(),
			report.GrossProfit.Round(2).InexactFloat64(),
			report.ProfitMargin.Round(percentPlaces).InexactFloat64(),
		}
		if err := s.sheets.AppendRow(ctx, closingSheetRange, row); err != nil {
			s.logger.Warn("append month closure to sheets", zap.String("month", key), zap.Error(err))
		}
	}

	return closed, nil
}

// ClosingSummary is the owner notification for a closed month.
func ClosingSummary(closed models.MonthlyReportSnapshot) string {
	if closed.SalesCount == 0 {
		return fmt.Sprintf("Fechamento de %s: nenhuma venda registrada.", closed.Month)
	}
	return fmt.Sprintf("Fechamento de %s: receita %s, custo %s, lucro bruto %s (margem %s) em %d vendas.",
		closed.Month,
		analytics.FormatBRL(closed.TotalRevenue),
		analytics.FormatBRL(closed.TotalCost),
		analytics.FormatBRL(closed.GrossProfit),
		analytics.FormatPercent(closed.ProfitMargin, percentPlaces),
		closed.SalesCount)
}
