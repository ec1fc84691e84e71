package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mamadbah2/aquashop/internal/domain/models"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func sampleMetrics() models.SalesMetrics {
	return models.SalesMetrics{
		TotalRevenue:         decimal.NewFromInt(180),
		PreviousMonthRevenue: decimal.RequireFromString("1234.5"),
		TotalCost:            decimal.NewFromInt(60),
		GrossProfit:          decimal.NewFromInt(120),
		ProfitMargin:         decimal.RequireFromString("66.6667"),
	}
}

func TestBuildInput(t *testing.T) {
	in := BuildInput(sampleMetrics())

	assert.Equal(t, "Receita Total: R$ 180,00, Custo Total: R$ 60,00, Lucro Bruto: R$ 120,00, Margem de Lucro: 66,7%.", in.CurrentSalesData)
	assert.Contains(t, in.HistoricalSalesData, "R$ 1.234,50")
	assert.NotEmpty(t, in.SalesForecast)

	prompt := Prompt(in)
	assert.Contains(t, prompt, "Current Sales Data: "+in.CurrentSalesData)
	assert.Contains(t, prompt, "Sales Forecast: "+in.SalesForecast)
}

func TestGenerate_ReturnsModelText(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Complete", mock.Anything, systemPrompt, Prompt(BuildInput(sampleMetrics()))).
		Return("  A receita caiu 85% em relação ao mês passado.\n", nil).Once()

	got := NewService(gen, nil).Generate(context.Background(), sampleMetrics())

	assert.Equal(t, models.SalesInsights{Insights: "A receita caiu 85% em relação ao mês passado."}, got)
	gen.AssertExpectations(t)
}

func TestGenerate_ZeroRevenueSkipsModel(t *testing.T) {
	gen := new(mockGenerator)

	got := NewService(gen, nil).Generate(context.Background(), models.SalesMetrics{PreviousMonthRevenue: decimal.NewFromInt(10)})

	assert.Equal(t, NotEnoughData, got.Insights)
	assert.Empty(t, got.Error)
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_Failures(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("timeout"))

	assert.Equal(t, models.SalesInsights{Error: GenerationFailed}, NewService(gen, nil).Generate(context.Background(), sampleMetrics()))
	assert.Equal(t, models.SalesInsights{Error: GenerationFailed}, NewService(nil, nil).Generate(context.Background(), sampleMetrics()))
}
