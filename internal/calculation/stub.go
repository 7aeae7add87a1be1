package calculation

import (
	"time"

	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/rgehrsitz/paysim/internal/taxrules"
	"github.com/shopspring/decimal"
)

// StubInput carries everything needed to model one pay date. PriorYTD and
// Balance are the accumulator state from the previous period; the zero values
// are correct for period 1 of a year.
type StubInput struct {
	Date      time.Time
	Gross     decimal.Decimal
	Frequency domain.PayFrequency

	Withholding domain.WithholdingConfig

	PretaxBenefits    decimal.Decimal
	ImputedIncome     decimal.Decimal
	PostTaxDeductions decimal.Decimal

	DesiredContribution    decimal.Decimal
	ContributionReducesFIT bool
	DeferralLimit          decimal.Decimal

	PriorYTD domain.PaySummary
	Balance  domain.FicaRoundingBalance
}

// StubModeler produces a complete single-period result and the updated YTD
// accumulation for exactly one pay date.
type StubModeler struct {
	Rules  taxrules.Rules
	Logger Logger
}

// NewStubModeler creates a modeler bound to one year's rules.
func NewStubModeler(rules taxrules.Rules) *StubModeler {
	return &StubModeler{Rules: rules, Logger: NopLogger{}}
}

// ModelPeriod computes one period's taxes, resolves the 401(k) contribution,
// and returns the current-period summary alongside the new YTD summary and
// rounding balance. Failures are typed ModelErrors; callers must check the
// error before trusting the result.
func (m *StubModeler) ModelPeriod(in StubInput) (*domain.ModelResult, error) {
	if err := m.validate(in); err != nil {
		return nil, err
	}
	calc := NewPeriodTaxCalculator(m.Rules)
	logger := m.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	// FICA-taxable wages: gross plus imputed income minus fully-pretax
	// benefits. Neither the 401(k) deferral nor post-tax deductions reduce
	// FICA wages.
	ficaWages := in.Gross.Add(in.ImputedIncome).Sub(in.PretaxBenefits)
	if ficaWages.IsNegative() {
		ficaWages = decimal.Zero
	}

	ss := calc.SocialSecurity(ficaWages, in.PriorYTD.Taxable.SS)
	med := calc.Medicare(ficaWages, in.PriorYTD.Taxable.Medicare)

	balance := in.Balance
	var ssWithheld, medWithheld decimal.Decimal
	ssWithheld, balance.SS = RoundWithCompensation(ss.Withheld, balance.SS)
	medWithheld, balance.Medicare = RoundWithCompensation(med.Withheld, balance.Medicare)
	ficaWithheld := ssWithheld.Add(medWithheld)

	fitTaxableFor := func(contribution decimal.Decimal) decimal.Decimal {
		taxable := in.Gross.Add(in.ImputedIncome).Sub(in.PretaxBenefits)
		if in.ContributionReducesFIT {
			taxable = taxable.Sub(contribution)
		}
		if taxable.IsNegative() {
			return decimal.Zero
		}
		return taxable
	}

	contribution := ResolveContribution(ContributionRequest{
		Desired:           in.DesiredContribution,
		YTDContributed:    in.PriorYTD.Deductions.Retirement,
		AnnualLimit:       in.DeferralLimit,
		Gross:             in.Gross,
		PretaxBenefits:    in.PretaxBenefits,
		PostTaxDeductions: in.PostTaxDeductions,
		FICAWithheld:      ficaWithheld,
	}, func(c decimal.Decimal) decimal.Decimal {
		return calc.FederalWithholding(fitTaxableFor(c), in.Withholding, in.Frequency)
	}, logger)

	fitTaxable := fitTaxableFor(contribution)
	fitWithheld := calc.FederalWithholding(fitTaxable, in.Withholding, in.Frequency)

	deductions := domain.DeductionTotals{
		FullyPretax: in.PretaxBenefits,
		Retirement:  contribution,
		PostTax:     in.PostTaxDeductions,
	}
	netPay := in.Gross.Sub(deductions.Total()).Sub(fitWithheld).Sub(ssWithheld).Sub(medWithheld)

	current := domain.PaySummary{
		Gross:      in.Gross,
		Deductions: deductions,
		Taxable: domain.TaxAmounts{
			FIT:      fitTaxable,
			SS:       ss.Taxable,
			Medicare: med.Taxable,
		},
		Withheld: domain.TaxAmounts{
			FIT:      fitWithheld,
			SS:       ssWithheld,
			Medicare: medWithheld,
		},
		NetPay: netPay,
	}

	ytd := in.PriorYTD.Add(current)
	// YTD SS-taxable wages never exceed the annual wage base, even when a
	// period's addition would overshoot.
	ytd.Taxable.SS = decimal.Min(ytd.Taxable.SS, m.Rules.SSWageBase)

	var warnings []string
	if ss.Capped {
		warnings = append(warnings, domain.WarningSSWageCapReached)
	}
	if med.ThresholdCrossed {
		warnings = append(warnings, domain.WarningAddlMedicareThreshold)
	}
	if ytd.Deductions.Retirement.GreaterThanOrEqual(in.DeferralLimit) && in.DeferralLimit.IsPositive() {
		warnings = append(warnings, domain.WarningDeferralLimitReached)
	}

	return &domain.ModelResult{
		Current:   current,
		YTD:       ytd,
		Balance:   balance,
		RulesYear: m.Rules.Year,
		Warnings:  warnings,
	}, nil
}

func (m *StubModeler) validate(in StubInput) error {
	if !in.Frequency.IsValid() {
		return domain.NewValidationError("frequency", "unknown pay frequency %q", in.Frequency)
	}
	if in.Gross.IsNegative() {
		return domain.NewValidationError("gross", "must not be negative")
	}
	if in.PretaxBenefits.IsNegative() {
		return domain.NewValidationError("pretax_benefits", "must not be negative")
	}
	if in.ImputedIncome.IsNegative() {
		return domain.NewValidationError("imputed_income", "must not be negative")
	}
	if in.PostTaxDeductions.IsNegative() {
		return domain.NewValidationError("post_tax_deductions", "must not be negative")
	}
	if in.DesiredContribution.IsNegative() {
		return domain.NewValidationError("desired_contribution", "must not be negative")
	}
	return nil
}
