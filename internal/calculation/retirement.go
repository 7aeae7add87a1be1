package calculation

import (
	"github.com/shopspring/decimal"
)

// maxContributionIterations bounds the fixed-point loop resolving the
// circular dependency between the 401(k) contribution and FIT withholding.
// Convergence typically takes one or two passes; the ceiling is a safety
// valve, not an expected exit.
const maxContributionIterations = 10

// ContributionRequest describes a period's desired 401(k) contribution and
// the cash facts it has to fit inside.
type ContributionRequest struct {
	Desired           decimal.Decimal
	YTDContributed    decimal.Decimal
	AnnualLimit       decimal.Decimal
	Gross             decimal.Decimal
	PretaxBenefits    decimal.Decimal
	PostTaxDeductions decimal.Decimal
	FICAWithheld      decimal.Decimal
}

// ResolveContribution determines the actual contribution for a period. The
// desired amount is first capped at the remaining statutory room, then at the
// cash available before FIT. Because a lower contribution raises FIT-taxable
// wages, which raises FIT withholding, which shrinks the cash left for the
// contribution, the final amount is found by iterating: fitFor reports the
// period's FIT withholding for a candidate contribution, and any projected
// negative net pay reduces the candidate by the deficit until net pay is
// non-negative. The deficit shrinks monotonically, so the loop converges well
// inside the iteration ceiling.
func ResolveContribution(req ContributionRequest, fitFor func(contribution decimal.Decimal) decimal.Decimal, logger Logger) decimal.Decimal {
	if logger == nil {
		logger = NopLogger{}
	}

	contribution := req.Desired
	if contribution.IsNegative() {
		contribution = decimal.Zero
	}

	room := req.AnnualLimit.Sub(req.YTDContributed)
	if room.IsNegative() {
		room = decimal.Zero
	}
	contribution = decimal.Min(contribution, room)

	cash := req.Gross.Sub(req.PretaxBenefits).Sub(req.FICAWithheld).Sub(req.PostTaxDeductions)
	if cash.IsNegative() {
		cash = decimal.Zero
	}
	contribution = decimal.Min(contribution, cash)

	for i := 0; i < maxContributionIterations; i++ {
		fit := fitFor(contribution)
		net := req.Gross.
			Sub(req.PretaxBenefits).
			Sub(contribution).
			Sub(req.PostTaxDeductions).
			Sub(fit).
			Sub(req.FICAWithheld)
		if !net.IsNegative() {
			return contribution.Round(2)
		}
		contribution = contribution.Add(net)
		if contribution.IsNegative() {
			contribution = decimal.Zero
		}
		if contribution.IsZero() {
			break
		}
		if i == maxContributionIterations-1 {
			logger.Warnf("contribution resolution hit the iteration ceiling (%d); using %s", maxContributionIterations, contribution.StringFixed(2))
		}
	}
	return contribution.Round(2)
}
