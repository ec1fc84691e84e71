package clients

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/repository/memory"
)

type countingNotifier struct{ calls int }

func (n *countingNotifier) Invalidate() { n.calls++ }

func seededStore() *memory.Store {
	store := memory.NewStore()
	day := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	store.Seed(
		[]models.Product{{ID: "p1", Name: "Betta", Category: "Peixes", Price: decimal.NewFromInt(20)}},
		[]models.Client{
			{ID: "c1", Name: "Ana Souza", Email: "ana@example.com"},
			{ID: "c2", Name: "Bruno Lima", Email: "bruno@aquario.com.br"},
		},
		[]models.Sale{
			{ID: "s1", ClientID: "c1", SaleDate: day, TotalAmount: decimal.NewFromInt(40), Products: []models.LineItem{{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(20)}}},
			{ID: "s2", ClientID: "c1", SaleDate: day.AddDate(0, 0, 5), TotalAmount: decimal.RequireFromString("12.5"), Products: []models.LineItem{{ProductID: "gone", Quantity: 1}}},
			{ID: "s3", ClientID: "deleted", SaleDate: day, TotalAmount: decimal.NewFromInt(99)},
		},
	)
	return store
}

func TestList_DerivesTotalSpent(t *testing.T) {
	store := seededStore()
	svc := NewService(store, store, store, nil, nil)

	list, err := svc.List(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
	assert.Equal(t, "52.5", list[0].TotalSpent.String())
	assert.True(t, list[1].TotalSpent.IsZero())
}

func TestList_SearchesNameAndEmail(t *testing.T) {
	store := seededStore()
	svc := NewService(store, store, store, nil, nil)

	byName, err := svc.List(context.Background(), "  SOUZA ")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "c1", byName[0].ID)

	byEmail, err := svc.List(context.Background(), "aquario")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "c2", byEmail[0].ID)

	none, err := svc.List(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGet(t *testing.T) {
	store := seededStore()
	svc := NewService(store, store, store, nil, nil)

	client, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "52.5", client.TotalSpent.String())

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreate(t *testing.T) {
	store := memory.NewStore()
	notifier := &countingNotifier{}
	svc := NewService(store, store, store, notifier, nil)
	now := time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	client, err := svc.Create(context.Background(), NewClient{Name: " Carla ", Email: "carla@example.com", Phone: "11 99999-0000"})
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "Carla", client.Name)
	assert.Equal(t, now, client.Since)
	assert.Equal(t, 1, notifier.calls)

	stored, err := store.GetClient(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Equal(t, client, stored)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(memory.NewStore(), nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), NewClient{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidClient)

	_, err = svc.Create(context.Background(), NewClient{Name: "Dora", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidClient)
}

func TestDelete_KeepsSales(t *testing.T) {
	store := seededStore()
	notifier := &countingNotifier{}
	svc := NewService(store, store, store, notifier, nil)

	require.NoError(t, svc.Delete(context.Background(), "c1"))

	sales, err := store.ListSalesByClient(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, sales, 2)
	assert.Equal(t, 1, notifier.calls)
	assert.ErrorIs(t, svc.Delete(context.Background(), "c1"), models.ErrNotFound)
}

func TestHistory_NewestFirstWithPlaceholders(t *testing.T) {
	store := seededStore()
	svc := NewService(store, store, store, nil, nil)

	history, err := svc.History(context.Background(), "c1")
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, "s2", history[0].ID)
	assert.Equal(t, models.MissingProductName, history[0].Products[0].Product.Name)
	assert.Equal(t, "Betta", history[1].Products[0].Product.Name)

	_, err = svc.History(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
