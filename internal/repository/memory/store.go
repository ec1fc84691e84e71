// Package memory is an in-process implementation of the mongodb repository
// interfaces. Service tests run against it.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

// Store holds every collection in maps guarded by one mutex, so a sale and its
// stock decrements are applied atomically.
type Store struct {
	mu        sync.RWMutex
	products  map[string]models.Product
	clients   map[string]models.Client
	sales     map[string]models.Sale
	snapshots map[string]models.MonthlyReportSnapshot

	// Err, when set, is returned by every call.
	Err error
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		products:  map[string]models.Product{},
		clients:   map[string]models.Client{},
		sales:     map[string]models.Sale{},
		snapshots: map[string]models.MonthlyReportSnapshot{},
	}
}

// Seed inserts fixtures without any checks.
func (s *Store) Seed(products []models.Product, clients []models.Client, sales []models.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p
	}
	for _, c := range clients {
		s.clients[c.ID] = c
	}
	for _, sale := range sales {
		s.sales[sale.ID] = sale
	}
}

// Snapshot returns a stored monthly report.
func (s *Store) Snapshot(key string) (models.MonthlyReportSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[key]
	return snap, ok
}

func (s *Store) ListProducts(context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return models.Product{}, s.Err
	}
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	return p, nil
}

func (s *Store) InsertProduct(_ context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.products[p.ID] = p
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, id string, u models.ProductUpdate) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.Product{}, s.Err
	}
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Cost != nil {
		p.Cost = *u.Cost
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	s.products[id] = p
	return p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	return s.remove(func() bool {
		_, ok := s.products[id]
		delete(s.products, id)
		return ok
	})
}

func (s *Store) ListClients(context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetClient(_ context.Context, id string) (models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return models.Client{}, s.Err
	}
	c, ok := s.clients[id]
	if !ok {
		return models.Client{}, models.ErrNotFound
	}
	return c, nil
}

func (s *Store) InsertClient(_ context.Context, c models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.clients[c.ID] = c
	return nil
}

func (s *Store) DeleteClient(_ context.Context, id string) error {
	return s.remove(func() bool {
		_, ok := s.clients[id]
		delete(s.clients, id)
		return ok
	})
}

func (s *Store) ListSales(context.Context) ([]models.Sale, error) {
	return s.listSales(func(models.Sale) bool { return true })
}

func (s *Store) ListSalesByClient(_ context.Context, clientID string) ([]models.Sale, error) {
	return s.listSales(func(sale models.Sale) bool { return sale.ClientID == clientID })
}

func (s *Store) listSales(keep func(models.Sale) bool) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Sale{}
	for _, sale := range s.sales {
		if keep(sale) {
			out = append(out, sale)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}

// InsertSaleWithStock checks every line item first and applies nothing when
// one of them would take stock below zero.
func (s *Store) InsertSaleWithStock(_ context.Context, sale models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	remaining := map[string]int{}
	for _, item := range sale.Products {
		p, ok := s.products[item.ProductID]
		if !ok {
			return fmt.Errorf("product %s: %w", item.ProductID, models.ErrInsufficientStock)
		}
		if _, seen := remaining[p.ID]; !seen {
			remaining[p.ID] = p.Stock
		}
		remaining[p.ID] -= item.Quantity
		if remaining[p.ID] < 0 {
			return fmt.Errorf("product %s: %w", item.ProductID, models.ErrInsufficientStock)
		}
	}

	for id, stock := range remaining {
		p := s.products[id]
		p.Stock = stock
		s.products[id] = p
	}
	s.sales[sale.ID] = sale
	return nil
}

func (s *Store) DeleteSale(_ context.Context, id string) error {
	return s.remove(func() bool {
		_, ok := s.sales[id]
		delete(s.sales, id)
		return ok
	})
}

func (s *Store) SaveMonthlyReport(_ context.Context, snapshot models.MonthlyReportSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.snapshots[snapshot.MonthKey] = snapshot
	return nil
}

func (s *Store) remove(del func() bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if !del() {
		return models.ErrNotFound
	}
	return nil
}
