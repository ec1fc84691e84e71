package clients

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	repo "github.com/mamadbah2/aquashop/internal/repository/mongodb"
)

// ErrInvalidClient indicates a client payload failed validation.
var ErrInvalidClient = errors.New("invalid client")

// ChangeNotifier is told about every confirmed client write.
type ChangeNotifier interface {
	Invalidate()
}

// NewClient is the input for registering a client.
type NewClient struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// Service manages clients and derives their spend from sales.
type Service struct {
	clients  repo.ClientRepository
	sales    repo.SaleRepository
	products repo.ProductRepository
	notifier ChangeNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new client service.
func NewService(clients repo.ClientRepository, sales repo.SaleRepository, products repo.ProductRepository, notifier ChangeNotifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		clients:  clients,
		sales:    sales,
		products: products,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns clients with their total spend. A non-empty query filters by a
// case-insensitive match on name or email.
func (s *Service) List(ctx context.Context, query string) ([]models.ClientSummary, error) {
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	sales, err := s.sales.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	spent := make(map[string]decimal.Decimal, len(clients))
	for _, sale := range sales {
		spent[sale.ClientID] = spent[sale.ClientID].Add(sale.TotalAmount)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	summaries := make([]models.ClientSummary, 0, len(clients))
	for _, c := range clients {
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) && !strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		summaries = append(summaries, models.ClientSummary{Client: c, TotalSpent: spent[c.ID]})
	}
	return summaries, nil
}

// Get returns one client with its total spend.
func (s *Service) Get(ctx context.Context, id string) (models.ClientSummary, error) {
	client, err := s.clients.GetClient(ctx, id)
	if err != nil {
		return models.ClientSummary{}, err
	}
	sales, err := s.sales.ListSalesByClient(ctx, id)
	if err != nil {
		return models.ClientSummary{}, fmt.Errorf("list client sales: %w", err)
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.TotalAmount)
	}
	return models.ClientSummary{Client: client, TotalSpent: total}, nil
}

// Create validates and stores a new client. Since is set to now.
func (s *Service) Create(ctx context.Context, input NewClient) (models.Client, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		return models.Client{}, fmt.Errorf("%w: name is required", ErrInvalidClient)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return models.Client{}, fmt.Errorf("%w: malformed email", ErrInvalidClient)
		}
	}

	client := models.Client{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(input.Phone),
		Since: s.now().UTC(),
	}
	if err := s.clients.InsertClient(ctx, client); err != nil {
		return models.Client{}, err
	}

	s.logger.Info("client created", zap.String("client_id", client.ID))
	s.changed()
	return client, nil
}

// Delete removes a client. Its sales remain and keep the dangling client id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.clients.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted", zap.String("client_id", id))
	s.changed()
	return nil
}

// History returns a client's sales newest first with products resolved.
func (s *Service) History(ctx context.Context, id string) ([]models.SaleDetails, error) {
	if _, err := s.clients.GetClient(ctx, id); err != nil {
		return nil, err
	}
	sales, err := s.sales.ListSalesByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list client sales: %w", err)
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

func (s *Service) changed() {
	if s.notifier != nil {
		s.notifier.Invalidate()
	}
}
