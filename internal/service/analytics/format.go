package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,50".
func FormatBRL(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return ptBR.Sprintf("R$ %.2f", value)
}

// FormatPercent renders a percentage with the given number of decimals and a
// pt-BR decimal comma, e.g. "33,33%".
func FormatPercent(value decimal.Decimal, places int32) string {
	f, _ := value.Round(places).Float64()
	return ptBR.Sprintf(fmt.Sprintf("%%.%df%%%%", places), f)
}
