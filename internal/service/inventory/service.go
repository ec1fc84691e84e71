package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	repo "github.com/mamadbah2/aquashop/internal/repository/mongodb"
)

// ErrInvalidProduct indicates a product payload failed validation.
var ErrInvalidProduct = errors.New("invalid product")

// ChangeNotifier is told about every confirmed catalog write.
type ChangeNotifier interface {
	Invalidate()
}

// NewProduct is the input for creating a catalog entry.
type NewProduct struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Stock    int             `json:"stock" binding:"gte=0"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
}

// Service manages the product catalog.
type Service struct {
	repo     repo.ProductRepository
	notifier ChangeNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new inventory service.
func NewService(repository repo.ProductRepository, notifier ChangeNotifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repository,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the catalog annotated with stock status.
func (s *Service) List(ctx context.Context) ([]models.InventoryItem, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(products))
	for _, p := range products {
		items = append(items, models.NewInventoryItem(p))
	}
	return items, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id string) (models.InventoryItem, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return models.InventoryItem{}, err
	}
	return models.NewInventoryItem(p), nil
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, input NewProduct) (models.Product, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if err := validate(&name, &category, &input.Stock, &input.Cost, &input.Price); err != nil {
		return models.Product{}, err
	}

	now := s.now().UTC()
	product := models.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Stock:     input.Stock,
		Cost:      input.Cost,
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertProduct(ctx, product); err != nil {
		return models.Product{}, err
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("category", product.Category))
	s.changed()
	return product, nil
}

// Update applies a partial edit. Cost edits also move historical cost
// reporting under the current cost policy.
func (s *Service) Update(ctx context.Context, id string, update models.ProductUpdate) (models.Product, error) {
	if update.IsEmpty() {
		return models.Product{}, fmt.Errorf("%w: nothing to update", ErrInvalidProduct)
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	if update.Category != nil {
		trimmed := strings.TrimSpace(*update.Category)
		update.Category = &trimmed
	}
	if err := validate(update.Name, update.Category, update.Stock, update.Cost, update.Price); err != nil {
		return models.Product{}, err
	}

	product, err := s.repo.UpdateProduct(ctx, id, update)
	if err != nil {
		return models.Product{}, err
	}

	s.logger.Info("product updated", zap.String("product_id", id))
	s.changed()
	return product, nil
}

// Delete removes a product. Existing sales keep their dangling reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	s.changed()
	return nil
}

func (s *Service) changed() {
	if s.notifier != nil {
		s.notifier.Invalidate()
	}
}

func validate(name, category *string, stock *int, cost, price *decimal.Decimal) error {
	switch {
	case name != nil && *name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case category != nil && *category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case stock != nil && *stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	case cost != nil && cost.IsNegative():
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidProduct)
	case price != nil && price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	return nil
}
