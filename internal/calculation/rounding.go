package calculation

import (
	"github.com/shopspring/decimal"
)

var (
	oneCent  = decimal.New(1, -2)
	halfCent = decimal.New(5, -3)
)

// RoundWithCompensation converts a raw fractional-cent tax amount into whole
// cents while carrying the residual error forward. The raw amount is
// truncated to cents and its fractional remainder added to the incoming
// balance; once the accumulated remainder reaches half a cent the output is
// bumped one cent and the balance reduced by a full cent. Summed over a
// year's periods this reproduces payroll-ledger truncate/round alternation,
// keeping the total error versus the true real-valued tax within half a cent
// instead of growing with the period count.
//
// Social Security and Medicare each carry their own balance. Federal income
// tax withholding is truncated without compensation and never passes through
// here.
func RoundWithCompensation(raw, balance decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	truncated := raw.RoundDown(2)
	combined := balance.Add(raw.Sub(truncated))
	if combined.GreaterThanOrEqual(halfCent) {
		return truncated.Add(oneCent), combined.Sub(oneCent)
	}
	return truncated, combined
}
