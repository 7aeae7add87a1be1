package taxrules

import (
	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/shopspring/decimal"
)

// WithholdingBracket is one row of an annual percentage-method table:
// tentative tax is BaseTax plus Rate on the excess over Threshold.
type WithholdingBracket struct {
	Threshold decimal.Decimal `yaml:"threshold"`
	BaseTax   decimal.Decimal `yaml:"base_tax"`
	Rate      decimal.Decimal `yaml:"rate"`
}

// Rules is the immutable set of payroll tax constants for one calendar year:
// FICA rates and caps, 401(k) limits, the supplemental flat rate, and the
// percentage-method withholding tables per filing status.
type Rules struct {
	Year int `yaml:"year"`

	SSWageBase             decimal.Decimal `yaml:"ss_wage_base"`
	SSRate                 decimal.Decimal `yaml:"ss_rate"`
	MedicareRate           decimal.Decimal `yaml:"medicare_rate"`
	AdditionalMedicareRate decimal.Decimal `yaml:"additional_medicare_rate"`

	// AdditionalMedicareWithholdingThreshold is the fixed dollar figure at
	// which the extra 0.9% withholding starts. Withholding ignores filing
	// status; AdditionalMedicareThresholdMFJ below is the separate
	// return-time liability threshold and must never be used here.
	AdditionalMedicareWithholdingThreshold decimal.Decimal `yaml:"additional_medicare_withholding_threshold"`
	AdditionalMedicareThresholdMFJ         decimal.Decimal `yaml:"additional_medicare_threshold_mfj"`

	ElectiveDeferralLimit decimal.Decimal `yaml:"elective_deferral_limit"`
	CatchUpLimit          decimal.Decimal `yaml:"catch_up_limit"`

	SupplementalFlatRate decimal.Decimal `yaml:"supplemental_flat_rate"`

	WithholdingSingle          []WithholdingBracket `yaml:"withholding_single"`
	WithholdingMarriedJointly  []WithholdingBracket `yaml:"withholding_married_jointly"`
	WithholdingHeadOfHousehold []WithholdingBracket `yaml:"withholding_head_of_household"`
}

// BracketsFor returns the withholding table for a filing status. When the
// Step 2 checkbox is set on a married-filing-jointly W-4 the single table is
// used instead, which halves the effective bracket widths the way the IRS
// multiple-jobs adjustment does.
func (r Rules) BracketsFor(status domain.FilingStatus, step2 bool) []WithholdingBracket {
	if step2 && status == domain.FilingMarriedJointly {
		return r.WithholdingSingle
	}
	switch status {
	case domain.FilingMarriedJointly:
		return r.WithholdingMarriedJointly
	case domain.FilingHeadOfHousehold:
		return r.WithholdingHeadOfHousehold
	default:
		return r.WithholdingSingle
	}
}

// DeferralLimit returns the annual elective deferral room, including the
// age-50 catch-up when eligible.
func (r Rules) DeferralLimit(catchUpEligible bool) decimal.Decimal {
	if catchUpEligible {
		return r.ElectiveDeferralLimit.Add(r.CatchUpLimit)
	}
	return r.ElectiveDeferralLimit
}

func bracket(threshold, baseTax int64, rate float64) WithholdingBracket {
	return WithholdingBracket{
		Threshold: decimal.NewFromInt(threshold),
		BaseTax:   decimal.NewFromInt(baseTax),
		Rate:      decimal.NewFromFloat(rate),
	}
}

// Rules2025 returns the compiled-in rule set for 2025. Withholding tables are
// the annual standard-withholding schedules from IRS Publication 15-T.
func Rules2025() Rules {
	return Rules{
		Year: 2025,

		SSWageBase:             decimal.NewFromInt(176100),
		SSRate:                 decimal.NewFromFloat(0.062),
		MedicareRate:           decimal.NewFromFloat(0.0145),
		AdditionalMedicareRate: decimal.NewFromFloat(0.009),

		AdditionalMedicareWithholdingThreshold: decimal.NewFromInt(200000),
		AdditionalMedicareThresholdMFJ:         decimal.NewFromInt(250000),

		ElectiveDeferralLimit: decimal.NewFromInt(23500),
		CatchUpLimit:          decimal.NewFromInt(7500),

		SupplementalFlatRate: decimal.NewFromFloat(0.22),

		WithholdingSingle: []WithholdingBracket{
			bracket(0, 0, 0),
			bracket(6400, 0, 0.10),
			{Threshold: decimal.NewFromInt(18325), BaseTax: decimal.NewFromFloat(1192.50), Rate: decimal.NewFromFloat(0.12)},
			{Threshold: decimal.NewFromInt(54875), BaseTax: decimal.NewFromFloat(5578.50), Rate: decimal.NewFromFloat(0.22)},
			bracket(109750, 17651, 0.24),
			bracket(203700, 40199, 0.32),
			bracket(256925, 57231, 0.35),
			{Threshold: decimal.NewFromInt(632750), BaseTax: decimal.NewFromFloat(188769.75), Rate: decimal.NewFromFloat(0.37)},
		},
		WithholdingMarriedJointly: []WithholdingBracket{
			bracket(0, 0, 0),
			bracket(17100, 0, 0.10),
			bracket(40950, 2385, 0.12),
			bracket(114050, 11157, 0.22),
			bracket(223800, 35302, 0.24),
			bracket(411700, 80398, 0.32),
			bracket(518150, 114462, 0.35),
			{Threshold: decimal.NewFromInt(768700), BaseTax: decimal.NewFromFloat(202154.50), Rate: decimal.NewFromFloat(0.37)},
		},
		WithholdingHeadOfHousehold: []WithholdingBracket{
			bracket(0, 0, 0),
			bracket(13900, 0, 0.10),
			bracket(30900, 1700, 0.12),
			bracket(78750, 7442, 0.22),
			bracket(117250, 15912, 0.24),
			bracket(211200, 38460, 0.32),
			bracket(264400, 55484, 0.35),
			{Threshold: decimal.NewFromInt(640250), BaseTax: decimal.NewFromFloat(187031.50), Rate: decimal.NewFromFloat(0.37)},
		},
	}
}
