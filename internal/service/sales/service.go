package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	repo "github.com/mamadbah2/aquashop/internal/repository/mongodb"
)

// ErrInvalidSale indicates the sale request could not be accepted.
var ErrInvalidSale = errors.New("invalid sale")

// ChangeNotifier is told about every confirmed sale write.
type ChangeNotifier interface {
	Invalidate()
}

// ItemRequest is one product and quantity of a sale being registered.
type ItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// RegisterRequest is the input for registering a sale.
type RegisterRequest struct {
	ClientID string        `json:"client_id" binding:"required"`
	Items    []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Service registers, lists and deletes sales.
type Service struct {
	sales    repo.SaleRepository
	products repo.ProductRepository
	clients  repo.ClientRepository
	notifier ChangeNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new sales service.
func NewService(sales repo.SaleRepository, products repo.ProductRepository, clients repo.ClientRepository, notifier ChangeNotifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sales:    sales,
		products: products,
		clients:  clients,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Register records a sale at the current catalog prices and decrements stock
// in the same transaction. Unit price and unit cost are frozen on each line
// item; the total is the sum of quantity * unit price.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (models.Sale, error) {
	if req.ClientID == "" {
		return models.Sale{}, fmt.Errorf("%w: client is required", ErrInvalidSale)
	}
	if len(req.Items) == 0 {
		return models.Sale{}, fmt.Errorf("%w: at least one product is required", ErrInvalidSale)
	}

	if _, err := s.clients.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Sale{}, fmt.Errorf("%w: unknown client %s", ErrInvalidSale, req.ClientID)
		}
		return models.Sale{}, fmt.Errorf("load client: %w", err)
	}

	items, err := mergeItems(req.Items)
	if err != nil {
		return models.Sale{}, err
	}

	sale := models.Sale{
		ID:          uuid.NewString(),
		ClientID:    req.ClientID,
		SaleDate:    s.now().UTC(),
		TotalAmount: decimal.Zero,
		Products:    make([]models.LineItem, 0, len(items)),
	}

	for _, item := range items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.Sale{}, fmt.Errorf("%w: unknown product %s", ErrInvalidSale, item.ProductID)
			}
			return models.Sale{}, fmt.Errorf("load product: %w", err)
		}
		if item.Quantity > product.Stock {
			return models.Sale{}, fmt.Errorf("%s has %d in stock: %w", product.Name, product.Stock, models.ErrInsufficientStock)
		}

		cost := product.Cost
		line := models.LineItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			UnitCost:  &cost,
		}
		sale.Products = append(sale.Products, line)
		sale.TotalAmount = sale.TotalAmount.Add(line.Subtotal())
	}

	if err := s.sales.InsertSaleWithStock(ctx, sale); err != nil {
		if errors.Is(err, models.ErrInsufficientStock) {
			return models.Sale{}, err
		}
		return models.Sale{}, fmt.Errorf("save sale: %w", err)
	}

	s.logger.Info("sale registered",
		zap.String("sale_id", sale.ID),
		zap.String("client_id", sale.ClientID),
		zap.Int("items", len(sale.Products)),
		zap.String("total", sale.TotalAmount.StringFixed(2)))
	s.changed()
	return sale, nil
}

// History returns every sale newest first with products resolved.
func (s *Service) History(ctx context.Context) ([]models.SaleDetails, error) {
	sales, err := s.sales.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	index := models.IndexProducts(products)
	history := make([]models.SaleDetails, 0, len(sales))
	for _, sale := range sales {
		history = append(history, models.ResolveSale(sale, index))
	}
	models.SortNewestFirst(history)
	return history, nil
}

// Delete removes a sale. Stock is not restored.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.sales.DeleteSale(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sale deleted", zap.String("sale_id", id))
	s.changed()
	return nil
}

func (s *Service) changed() {
	if s.notifier != nil {
		s.notifier.Invalidate()
	}
}

// mergeItems folds repeated products into one line, keeping first-seen order.
func mergeItems(items []ItemRequest) ([]ItemRequest, error) {
	merged := make([]ItemRequest, 0, len(items))
	position := make(map[string]int, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: product is required", ErrInvalidSale)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidSale)
		}
		if i, ok := position[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		position[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}
