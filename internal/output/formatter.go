package output

import (
	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a full-year simulation result in one output format.
type Formatter interface {
	Name() string
	Format(result *domain.StubSequenceResult) ([]byte, error)
}

// GetFormatterByName returns the formatter registered under name, or nil for
// an unsupported format.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "table", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	default:
		return nil
	}
}

// FormatCurrency formats a decimal amount as a dollar figure with cents.
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}
