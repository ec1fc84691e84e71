// Package insights turns the month's sales metrics into a short narrative
// written by a language model.
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/domain/models"
	"github.com/mamadbah2/aquashop/internal/service/analytics"
)

const (
	// NotEnoughData is returned instead of calling the model when the current
	// month has no revenue.
	NotEnoughData = "Ainda não há dados de vendas suficientes para gerar insights."
	// GenerationFailed is reported when the model is unavailable or errors.
	GenerationFailed = "Falha ao gerar insights de vendas."

	generateTimeout = 30 * time.Second
)

const systemPrompt = "You are a business analyst specializing in sales data analysis for a small aquarium shop in Brazil. Answer in Brazilian Portuguese."

const promptTemplate = `You will analyze the current sales data, historical sales data, and sales forecasts to identify key insights and anomalies.

Based on your analysis, you will highlight the most important insights that the business owner should pay attention to. Mention concrete numbers whenever possible.

Current Sales Data: %s
Historical Sales Data: %s
Sales Forecast: %s`

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Input holds the three narrative fields sent to the model.
type Input struct {
	CurrentSalesData    string
	HistoricalSalesData string
	SalesForecast       string
}

// Service generates sales insights. A nil generator makes every request fail
// with GenerationFailed.
type Service struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewService wires a new insights service.
func NewService(generator TextGenerator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, logger: logger}
}

// BuildInput renders metrics into the narrative fields.
func BuildInput(m models.SalesMetrics) Input {
	return Input{
		CurrentSalesData: fmt.Sprintf("Receita Total: %s, Custo Total: %s, Lucro Bruto: %s, Margem de Lucro: %s.",
			analytics.FormatBRL(m.TotalRevenue),
			analytics.FormatBRL(m.TotalCost),
			analytics.FormatBRL(m.GrossProfit),
			analytics.FormatPercent(m.ProfitMargin, 1)),
		HistoricalSalesData: fmt.Sprintf("A receita do mês passado foi %s. Dados históricos de meses anteriores podem ser usados para comparação de crescimento.",
			analytics.FormatBRL(m.PreviousMonthRevenue)),
		SalesForecast: "A previsão de vendas pode ser usada para avaliar o desempenho atual.",
	}
}

// Prompt renders the analyst prompt for in.
func Prompt(in Input) string {
	return fmt.Sprintf(promptTemplate, in.CurrentSalesData, in.HistoricalSalesData, in.SalesForecast)
}

// Generate returns the model's narrative for m. Failures are reported in the
// result rather than as an error so the dashboard can still render.
func (s *Service) Generate(ctx context.Context, m models.SalesMetrics) models.SalesInsights {
	if m.TotalRevenue.IsZero() {
		return models.SalesInsights{Insights: NotEnoughData}
	}
	if s.generator == nil {
		s.logger.Warn("insights requested without a configured model")
		return models.SalesInsights{Error: GenerationFailed}
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	text, err := s.generator.Complete(ctx, systemPrompt, Prompt(BuildInput(m)))
	if err != nil {
		s.logger.Error("generate sales insights", zap.Error(err))
		return models.SalesInsights{Error: GenerationFailed}
	}
	return models.SalesInsights{Insights: strings.TrimSpace(text)}
}
