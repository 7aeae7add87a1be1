package domain

import (
	"github.com/shopspring/decimal"
)

// PayFrequency identifies how often a party receives a regular paycheck.
type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyBiweekly    PayFrequency = "biweekly"
	FrequencySemimonthly PayFrequency = "semimonthly"
	FrequencyMonthly     PayFrequency = "monthly"
)

// PeriodsPerYear returns the number of regular pay periods in a calendar year,
// or 0 for an unrecognized frequency.
func (f PayFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemimonthly:
		return 24
	case FrequencyMonthly:
		return 12
	default:
		return 0
	}
}

// IsValid reports whether the frequency is one of the supported values.
func (f PayFrequency) IsValid() bool {
	return f.PeriodsPerYear() > 0
}

// FilingStatus is the federal filing status from Step 1(c) of Form W-4.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJointly  FilingStatus = "married_jointly"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// TaxAmounts carries one figure per federal payroll tax. The same shape is
// used for taxable wages and for withheld amounts.
type TaxAmounts struct {
	FIT      decimal.Decimal `json:"fit" yaml:"fit"`
	SS       decimal.Decimal `json:"ss" yaml:"ss"`
	Medicare decimal.Decimal `json:"medicare" yaml:"medicare"`
}

// Add returns the field-wise sum of two TaxAmounts.
func (t TaxAmounts) Add(other TaxAmounts) TaxAmounts {
	return TaxAmounts{
		FIT:      t.FIT.Add(other.FIT),
		SS:       t.SS.Add(other.SS),
		Medicare: t.Medicare.Add(other.Medicare),
	}
}

// Total returns the sum of the three tax fields.
func (t TaxAmounts) Total() decimal.Decimal {
	return t.FIT.Add(t.SS).Add(t.Medicare)
}

// DeductionTotals buckets a period's deductions by tax treatment.
// FullyPretax (health, dental, FSA, HSA) reduces both FIT and FICA taxable
// wages; Retirement (401k elective deferral) reduces FIT taxable wages only;
// PostTax reduces neither.
type DeductionTotals struct {
	FullyPretax decimal.Decimal `json:"fullyPretax" yaml:"fully_pretax"`
	Retirement  decimal.Decimal `json:"retirement" yaml:"retirement"`
	PostTax     decimal.Decimal `json:"postTax" yaml:"post_tax"`
}

// Add returns the field-wise sum of two DeductionTotals.
func (d DeductionTotals) Add(other DeductionTotals) DeductionTotals {
	return DeductionTotals{
		FullyPretax: d.FullyPretax.Add(other.FullyPretax),
		Retirement:  d.Retirement.Add(other.Retirement),
		PostTax:     d.PostTax.Add(other.PostTax),
	}
}

// Total returns the sum of all deduction buckets.
func (d DeductionTotals) Total() decimal.Decimal {
	return d.FullyPretax.Add(d.Retirement).Add(d.PostTax)
}

// PaySummary holds the complete figures for either a single pay period or a
// year-to-date accumulation. The zero value is the canonical starting
// accumulator for period 1 of a year.
type PaySummary struct {
	Gross      decimal.Decimal `json:"gross" yaml:"gross"`
	Deductions DeductionTotals `json:"deductions" yaml:"deductions"`
	Taxable    TaxAmounts      `json:"taxable" yaml:"taxable"`
	Withheld   TaxAmounts      `json:"withheld" yaml:"withheld"`
	NetPay     decimal.Decimal `json:"netPay" yaml:"net_pay"`
}

// Add accumulates a period summary into a YTD summary field by field.
// Callers that need the Social Security wage-base clamp apply it afterward.
func (p PaySummary) Add(period PaySummary) PaySummary {
	return PaySummary{
		Gross:      p.Gross.Add(period.Gross),
		Deductions: p.Deductions.Add(period.Deductions),
		Taxable:    p.Taxable.Add(period.Taxable),
		Withheld:   p.Withheld.Add(period.Withheld),
		NetPay:     p.NetPay.Add(period.NetPay),
	}
}

// Sub returns the field-wise difference of two summaries. Used to derive a
// prior-YTD summary from an observed record's YTD and current figures.
func (p PaySummary) Sub(period PaySummary) PaySummary {
	return PaySummary{
		Gross: p.Gross.Sub(period.Gross),
		Deductions: DeductionTotals{
			FullyPretax: p.Deductions.FullyPretax.Sub(period.Deductions.FullyPretax),
			Retirement:  p.Deductions.Retirement.Sub(period.Deductions.Retirement),
			PostTax:     p.Deductions.PostTax.Sub(period.Deductions.PostTax),
		},
		Taxable: TaxAmounts{
			FIT:      p.Taxable.FIT.Sub(period.Taxable.FIT),
			SS:       p.Taxable.SS.Sub(period.Taxable.SS),
			Medicare: p.Taxable.Medicare.Sub(period.Taxable.Medicare),
		},
		Withheld: TaxAmounts{
			FIT:      p.Withheld.FIT.Sub(period.Withheld.FIT),
			SS:       p.Withheld.SS.Sub(period.Withheld.SS),
			Medicare: p.Withheld.Medicare.Sub(period.Withheld.Medicare),
		},
		NetPay: p.NetPay.Sub(period.NetPay),
	}
}

// TotalWithheld returns the sum of all withheld taxes.
func (p PaySummary) TotalWithheld() decimal.Decimal {
	return p.Withheld.Total()
}

// FicaRoundingBalance carries the signed sub-cent remainders for the Social
// Security and Medicare withholding streams. A fresh balance is created at the
// start of each calendar year and threaded through every pay event in strict
// chronological order; it is never persisted across years.
type FicaRoundingBalance struct {
	SS       decimal.Decimal `json:"ss"`
	Medicare decimal.Decimal `json:"medicare"`
}
