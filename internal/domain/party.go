package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CompPlan describes regular recurring pay: the gross amount per period and
// how often it is paid.
type CompPlan struct {
	GrossPerPeriod decimal.Decimal `json:"grossPerPeriod" yaml:"gross_per_period"`
	Frequency      PayFrequency    `json:"frequency" yaml:"frequency"`
}

// CompPlanPeriod is one effective-dated entry in a comp plan history.
type CompPlanPeriod struct {
	EffectiveDate  time.Time       `json:"effectiveDate" yaml:"effective_date"`
	GrossPerPeriod decimal.Decimal `json:"grossPerPeriod" yaml:"gross_per_period"`
}

// CompPlanHistory is an ordered list of comp plan changes (raises, employer
// changes). The most recent entry effective on or before a date wins.
type CompPlanHistory []CompPlanPeriod

// GrossAsOf resolves the gross per period effective on the given date. The
// second return value is false when no entry is effective yet.
func (h CompPlanHistory) GrossAsOf(date time.Time) (decimal.Decimal, bool) {
	var (
		best  CompPlanPeriod
		found bool
	)
	for _, p := range h {
		if p.EffectiveDate.After(date) {
			continue
		}
		if !found || p.EffectiveDate.After(best.EffectiveDate) {
			best = p
			found = true
		}
	}
	if !found {
		return decimal.Zero, false
	}
	return best.GrossPerPeriod, true
}

// Sorted returns a copy of the history ordered by effective date ascending.
func (h CompPlanHistory) Sorted() CompPlanHistory {
	out := make(CompPlanHistory, len(h))
	copy(out, h)
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.Before(out[j].EffectiveDate) })
	return out
}

// WithholdingConfig holds the Form W-4 settings used by the percentage method.
type WithholdingConfig struct {
	FilingStatus           FilingStatus    `json:"filingStatus" yaml:"filing_status"`
	Step2Checkbox          bool            `json:"step2Checkbox" yaml:"step2_checkbox"`
	Step3Dependents        decimal.Decimal `json:"step3Dependents" yaml:"step3_dependents"`
	Step4aOtherIncome      decimal.Decimal `json:"step4aOtherIncome" yaml:"step4a_other_income"`
	Step4bDeductions       decimal.Decimal `json:"step4bDeductions" yaml:"step4b_deductions"`
	Step4cExtraWithholding decimal.Decimal `json:"step4cExtraWithholding" yaml:"step4c_extra_withholding"`
}

// DefaultWithholding returns the settings assumed for an unconfigured party:
// single filer, no adjustments.
func DefaultWithholding() WithholdingConfig {
	return WithholdingConfig{FilingStatus: FilingSingle}
}

// BenefitsConfig maps pretax benefit categories (health, dental, vision, FSA,
// HSA, ...) to per-period amounts. ImputedIncome is taxable non-cash income
// such as group term life: it raises taxable wages without raising cash gross.
type BenefitsConfig struct {
	Pretax        map[string]decimal.Decimal `json:"pretax" yaml:"pretax"`
	ImputedIncome decimal.Decimal            `json:"imputedIncome" yaml:"imputed_income"`
}

// PretaxTotal sums all pretax benefit categories for one period.
func (b BenefitsConfig) PretaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b.Pretax {
		total = total.Add(amount)
	}
	return total
}

// ElectionType distinguishes the tax treatment of a retirement election.
type ElectionType string

const (
	ElectionPretax   ElectionType = "pretax"
	ElectionRoth     ElectionType = "roth"
	ElectionAfterTax ElectionType = "after_tax"
)

// ReducesFITTaxable reports whether contributions of this type reduce federal
// income tax taxable wages. Roth and after-tax deferrals do not, though they
// still consume statutory room.
func (e ElectionType) ReducesFITTaxable() bool {
	return e == ElectionPretax || e == ""
}

// AmountType says whether an election amount is a fraction of gross or a
// fixed dollar figure.
type AmountType string

const (
	AmountPercentage AmountType = "percentage"
	AmountAbsolute   AmountType = "absolute"
)

// RetirementElection is one effective-dated 401(k) deferral election.
// Percentage amounts are fractions in [0, 1].
type RetirementElection struct {
	EffectiveDate time.Time       `json:"effectiveDate" yaml:"effective_date"`
	Type          ElectionType    `json:"type" yaml:"type"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	AmountType    AmountType      `json:"amountType" yaml:"amount_type"`
}

// DesiredContribution resolves the election to a dollar amount for a period
// with the given gross pay.
func (e RetirementElection) DesiredContribution(gross decimal.Decimal) decimal.Decimal {
	if e.AmountType == AmountPercentage {
		return gross.Mul(e.Amount)
	}
	return e.Amount
}

// RetirementElectionHistory is an ordered list of deferral elections. Regular
// pay and bonus/supplemental pay carry independent histories.
type RetirementElectionHistory []RetirementElection

// AsOf resolves the election effective on the given date. The second return
// value is false when no election is effective yet.
func (h RetirementElectionHistory) AsOf(date time.Time) (RetirementElection, bool) {
	var (
		best  RetirementElection
		found bool
	)
	for _, e := range h {
		if e.EffectiveDate.After(date) {
			continue
		}
		if !found || e.EffectiveDate.After(best.EffectiveDate) {
			best = e
			found = true
		}
	}
	return best, found
}

// SupplementalPayEvent is an irregular pay event (bonus, equity vest) taxed at
// the flat supplemental rate instead of the percentage method. When
// RetirementContribution is nil the bonus election history decides the
// contribution.
type SupplementalPayEvent struct {
	Date                   time.Time        `json:"date" yaml:"date"`
	Gross                  decimal.Decimal  `json:"gross" yaml:"gross"`
	RetirementContribution *decimal.Decimal `json:"retirementContribution,omitempty" yaml:"retirement_contribution,omitempty"`
}

// DeductionOverride replaces the profile-derived deduction amounts for a
// single regular pay date. Its date must align with a generated pay date.
type DeductionOverride struct {
	Date        time.Time       `json:"date" yaml:"date"`
	FullyPretax decimal.Decimal `json:"fullyPretax" yaml:"fully_pretax"`
	PostTax     decimal.Decimal `json:"postTax" yaml:"post_tax"`
}
