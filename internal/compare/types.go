package compare

import (
	"time"

	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/shopspring/decimal"
)

// FieldDiff reports one leaf value where the modeled figure diverges from the
// observed record. Diff is modeled minus actual, signed. A diff is reported,
// never thrown: the comparator makes no judgment about which side is correct.
type FieldDiff struct {
	Field   string          `json:"field"`
	Modeled decimal.Decimal `json:"modeled"`
	Actual  decimal.Decimal `json:"actual"`
	Diff    decimal.Decimal `json:"diff"`
}

// ValidationReport is the full outcome of validating one observed record.
type ValidationReport struct {
	Date      time.Time   `json:"date"`
	RulesYear int         `json:"rulesYear"`
	Diffs     []FieldDiff `json:"diffs"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// Clean reports whether no field diverged beyond the tolerance.
func (r *ValidationReport) Clean() bool {
	return len(r.Diffs) == 0
}

// ObservedRecord is a real pay stub's extracted figures: the current period
// and the YTD accumulation printed on it, plus the facts needed to re-model
// the period.
type ObservedRecord struct {
	Date        time.Time                 `json:"date" yaml:"date"`
	Frequency   domain.PayFrequency       `json:"frequency" yaml:"frequency"`
	Withholding *domain.WithholdingConfig `json:"withholding,omitempty" yaml:"withholding,omitempty"`
	Current     domain.PaySummary         `json:"current" yaml:"current"`
	YTD         domain.PaySummary         `json:"ytd" yaml:"ytd"`
}

// tolerance below which a difference is treated as rounding noise.
var tolerance = decimal.New(1, -2)

// diffSummaries walks every leaf field of two PaySummary values and collects
// the ones differing by at least a cent.
func diffSummaries(prefix string, modeled, actual domain.PaySummary) []FieldDiff {
	leaves := []struct {
		name            string
		modeled, actual decimal.Decimal
	}{
		{"gross", modeled.Gross, actual.Gross},
		{"deductions.fully_pretax", modeled.Deductions.FullyPretax, actual.Deductions.FullyPretax},
		{"deductions.retirement", modeled.Deductions.Retirement, actual.Deductions.Retirement},
		{"deductions.post_tax", modeled.Deductions.PostTax, actual.Deductions.PostTax},
		{"taxable.fit", modeled.Taxable.FIT, actual.Taxable.FIT},
		{"taxable.ss", modeled.Taxable.SS, actual.Taxable.SS},
		{"taxable.medicare", modeled.Taxable.Medicare, actual.Taxable.Medicare},
		{"withheld.fit", modeled.Withheld.FIT, actual.Withheld.FIT},
		{"withheld.ss", modeled.Withheld.SS, actual.Withheld.SS},
		{"withheld.medicare", modeled.Withheld.Medicare, actual.Withheld.Medicare},
		{"net_pay", modeled.NetPay, actual.NetPay},
	}

	var diffs []FieldDiff
	for _, leaf := range leaves {
		diff := leaf.modeled.Sub(leaf.actual)
		if diff.Abs().LessThan(tolerance) {
			continue
		}
		diffs = append(diffs, FieldDiff{
			Field:   prefix + "." + leaf.name,
			Modeled: leaf.modeled,
			Actual:  leaf.actual,
			Diff:    diff,
		})
	}
	return diffs
}
