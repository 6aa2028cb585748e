package report

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// SemValor é exibido no lugar de valores ausentes.
const SemValor = "—"

// LayoutData é o formato de data/hora exibido nos relatórios.
const LayoutData = "02/01/2006 15:04:05"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatarMoeda formata v em reais (e.g. "R$ 1.234,56"); nil vira SemValor.
func FormatarMoeda(v *decimal.Decimal) string {
	if v == nil {
		return SemValor
	}
	arredondado := v.Round(2)
	s := "R$ " + printer.Sprintf("%v", number.Decimal(arredondado.Abs().InexactFloat64(), number.Scale(2)))
	if arredondado.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatarQuantidade aplica o separador de milhar brasileiro.
func FormatarQuantidade(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatarData formata t no horário local; nil ou zero vira SemValor.
func FormatarData(t *time.Time) string {
	if t == nil || t.IsZero() {
		return SemValor
	}
	return t.Local().Format(LayoutData)
}
