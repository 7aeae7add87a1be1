package calculation

import (
	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/rgehrsitz/paysim/internal/taxrules"
	"github.com/shopspring/decimal"
)

// PeriodTaxCalculator computes one pay period's federal withholding from a
// single year's rule table. It holds no mutable state; the YTD wage totals
// that drive the annual caps are passed in per call.
type PeriodTaxCalculator struct {
	Rules taxrules.Rules
}

// NewPeriodTaxCalculator creates a calculator bound to one year's rules.
func NewPeriodTaxCalculator(rules taxrules.Rules) *PeriodTaxCalculator {
	return &PeriodTaxCalculator{Rules: rules}
}

// FederalWithholding computes per-period federal income tax withholding via
// the percentage method: annualize the period's FIT-taxable wages, apply the
// W-4 Step 4(a)/4(b) adjustments, look up the tentative annual tax in the
// filing-status table, de-annualize, subtract the prorated Step 3 dependent
// credit (floored at zero), and add the Step 4(c) flat extra amount. The
// result is truncated to cents the way payroll ledgers record FIT.
func (c *PeriodTaxCalculator) FederalWithholding(fitTaxable decimal.Decimal, w4 domain.WithholdingConfig, frequency domain.PayFrequency) decimal.Decimal {
	periods := decimal.NewFromInt(int64(frequency.PeriodsPerYear()))
	if periods.IsZero() {
		return decimal.Zero
	}

	annual := fitTaxable.Mul(periods)
	adjusted := annual.Add(w4.Step4aOtherIncome).Sub(w4.Step4bDeductions)

	brackets := c.Rules.BracketsFor(w4.FilingStatus, w4.Step2Checkbox)
	tentativeAnnual := tentativeAnnualTax(adjusted, brackets)

	perPeriod := tentativeAnnual.Div(periods)
	perPeriod = perPeriod.Sub(w4.Step3Dependents.Div(periods))
	if perPeriod.IsNegative() {
		perPeriod = decimal.Zero
	}
	perPeriod = perPeriod.Add(w4.Step4cExtraWithholding)
	if perPeriod.IsNegative() {
		return decimal.Zero
	}
	return perPeriod.RoundDown(2)
}

// tentativeAnnualTax finds the bracket whose threshold is the highest one not
// exceeding adjusted annual wages and applies base tax plus the marginal rate
// on the excess. Brackets are ordered by ascending threshold.
func tentativeAnnualTax(adjusted decimal.Decimal, brackets []taxrules.WithholdingBracket) decimal.Decimal {
	if adjusted.LessThanOrEqual(decimal.Zero) || len(brackets) == 0 {
		return decimal.Zero
	}
	row := brackets[0]
	for _, b := range brackets[1:] {
		if b.Threshold.GreaterThan(adjusted) {
			break
		}
		row = b
	}
	return row.BaseTax.Add(adjusted.Sub(row.Threshold).Mul(row.Rate))
}

// SocialSecurityResult is one period's Social Security withholding before
// rounding compensation.
type SocialSecurityResult struct {
	Taxable  decimal.Decimal
	Withheld decimal.Decimal
	Capped   bool
}

// SocialSecurity computes the period's Social Security taxable wages and raw
// withholding. The annual wage base is enforced strictly against prior YTD
// Social Security wages: only the room left under the cap is taxable, and the
// Capped flag reports when the cumulative cap is reached this period.
func (c *PeriodTaxCalculator) SocialSecurity(ficaWages, ytdSSWages decimal.Decimal) SocialSecurityResult {
	room := c.Rules.SSWageBase.Sub(ytdSSWages)
	if room.IsNegative() {
		room = decimal.Zero
	}
	taxable := decimal.Min(ficaWages, room)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	return SocialSecurityResult{
		Taxable:  taxable,
		Withheld: taxable.Mul(c.Rules.SSRate),
		Capped:   ytdSSWages.Add(ficaWages).GreaterThanOrEqual(c.Rules.SSWageBase),
	}
}

// MedicareResult is one period's Medicare withholding before rounding
// compensation.
type MedicareResult struct {
	Taxable          decimal.Decimal
	Withheld         decimal.Decimal
	ThresholdCrossed bool
}

// Medicare computes the period's Medicare withholding: the base rate on the
// full FICA wages (no cap), plus the additional 0.9% on the portion of this
// period's wages that, combined with prior YTD Medicare wages, exceeds the
// withholding threshold. The threshold here is the fixed withholding-time
// figure, independent of filing status; it is distinct from the MFJ
// return-time liability threshold carried elsewhere in the rules.
func (c *PeriodTaxCalculator) Medicare(ficaWages, ytdMedicareWages decimal.Decimal) MedicareResult {
	if ficaWages.IsNegative() {
		ficaWages = decimal.Zero
	}
	withheld := ficaWages.Mul(c.Rules.MedicareRate)

	threshold := c.Rules.AdditionalMedicareWithholdingThreshold
	excess := ytdMedicareWages.Add(ficaWages).Sub(threshold)
	crossed := false
	if excess.GreaterThan(decimal.Zero) {
		// Only this period's share above the threshold is taxed extra.
		additionalBase := decimal.Min(ficaWages, excess)
		withheld = withheld.Add(additionalBase.Mul(c.Rules.AdditionalMedicareRate))
		crossed = true
	}
	return MedicareResult{
		Taxable:          ficaWages,
		Withheld:         withheld,
		ThresholdCrossed: crossed,
	}
}
