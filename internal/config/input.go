package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rgehrsitz/paysim/internal/calculation"
	"github.com/rgehrsitz/paysim/internal/compare"
	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RetirementSection groups the two independent election histories.
type RetirementSection struct {
	Regular         domain.RetirementElectionHistory `yaml:"regular"`
	Bonus           domain.RetirementElectionHistory `yaml:"bonus"`
	CatchUpEligible bool                             `yaml:"catch_up_eligible"`
}

// Scenario is the on-disk shape of a modeling request: one party, one year,
// the comp/benefits/W-4 facts, and optional supplemental events, overrides,
// and an observed record to validate against.
type Scenario struct {
	Party              string                        `yaml:"party"`
	Year               int                           `yaml:"year"`
	ReferencePayDate   time.Time                     `yaml:"reference_pay_date"`
	Frequency          domain.PayFrequency           `yaml:"frequency"`
	CompPlan           *domain.CompPlan              `yaml:"comp_plan"`
	CompPlanHistory    domain.CompPlanHistory        `yaml:"comp_plan_history"`
	Withholding        *domain.WithholdingConfig     `yaml:"withholding"`
	Benefits           domain.BenefitsConfig         `yaml:"benefits"`
	Retirement         RetirementSection             `yaml:"retirement"`
	Supplementals      []domain.SupplementalPayEvent `yaml:"supplementals"`
	DeductionOverrides []domain.DeductionOverride    `yaml:"deduction_overrides"`
	Observed           *compare.ObservedRecord       `yaml:"observed"`
}

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML file. Decoding is strict: an
// unknown field is a validation error, never silently dropped.
func (ip *InputParser) LoadFromFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses and validates scenario yaml.
func (ip *InputParser) Load(data []byte) (*Scenario, error) {
	var scenario Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scenario); err != nil && err != io.EOF {
		return nil, domain.NewValidationError("", "failed to parse scenario: %v", err)
	}
	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// ValidateScenario validates the loaded scenario. A zero year defaults to the
// reference pay date's year.
func (ip *InputParser) ValidateScenario(s *Scenario) error {
	if s.Year == 0 && !s.ReferencePayDate.IsZero() {
		s.Year = s.ReferencePayDate.Year()
	}
	if s.Year < 2000 || s.Year > 2100 {
		return domain.NewValidationError("year", "must be between 2000 and 2100, got %d", s.Year)
	}
	if !s.Frequency.IsValid() {
		return domain.NewValidationError("frequency", "must be weekly, biweekly, semimonthly, or monthly, got %q", s.Frequency)
	}
	if s.CompPlan == nil && len(s.CompPlanHistory) == 0 {
		return domain.NewValidationError("comp_plan", "a comp plan or comp plan history is required")
	}
	if s.CompPlan != nil && s.CompPlan.GrossPerPeriod.IsNegative() {
		return domain.NewValidationError("comp_plan.gross_per_period", "must not be negative")
	}
	for i, p := range s.CompPlanHistory {
		if p.EffectiveDate.IsZero() {
			return domain.NewValidationError(fmt.Sprintf("comp_plan_history[%d].effective_date", i), "is required")
		}
		if p.GrossPerPeriod.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("comp_plan_history[%d].gross_per_period", i), "must not be negative")
		}
	}
	if s.Withholding != nil {
		if err := validateWithholding(s.Withholding); err != nil {
			return err
		}
	}
	for category, amount := range s.Benefits.Pretax {
		if amount.IsNegative() {
			return domain.NewValidationError("benefits.pretax."+category, "must not be negative")
		}
	}
	if s.Benefits.ImputedIncome.IsNegative() {
		return domain.NewValidationError("benefits.imputed_income", "must not be negative")
	}
	if err := validateElections("retirement.regular", s.Retirement.Regular); err != nil {
		return err
	}
	if err := validateElections("retirement.bonus", s.Retirement.Bonus); err != nil {
		return err
	}
	for i, sup := range s.Supplementals {
		if sup.Date.IsZero() {
			return domain.NewValidationError(fmt.Sprintf("supplementals[%d].date", i), "is required")
		}
		if sup.Gross.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("supplementals[%d].gross", i), "must not be negative")
		}
		if sup.RetirementContribution != nil && sup.RetirementContribution.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("supplementals[%d].retirement_contribution", i), "must not be negative")
		}
	}
	for i, ov := range s.DeductionOverrides {
		if ov.Date.IsZero() {
			return domain.NewValidationError(fmt.Sprintf("deduction_overrides[%d].date", i), "is required")
		}
		if ov.FullyPretax.IsNegative() || ov.PostTax.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("deduction_overrides[%d]", i), "amounts must not be negative")
		}
	}
	if s.Observed != nil {
		if s.Observed.Date.IsZero() {
			return domain.NewValidationError("observed.date", "is required")
		}
		if s.Observed.Frequency == "" {
			s.Observed.Frequency = s.Frequency
		}
		if !s.Observed.Frequency.IsValid() {
			return domain.NewValidationError("observed.frequency", "unknown pay frequency %q", s.Observed.Frequency)
		}
	}
	return nil
}

func validateWithholding(w *domain.WithholdingConfig) error {
	switch w.FilingStatus {
	case domain.FilingSingle, domain.FilingMarriedJointly, domain.FilingHeadOfHousehold:
	case "":
		w.FilingStatus = domain.FilingSingle
	default:
		return domain.NewValidationError("withholding.filing_status", "unknown filing status %q", w.FilingStatus)
	}
	if w.Step3Dependents.IsNegative() {
		return domain.NewValidationError("withholding.step3_dependents", "must not be negative")
	}
	if w.Step4aOtherIncome.IsNegative() {
		return domain.NewValidationError("withholding.step4a_other_income", "must not be negative")
	}
	if w.Step4bDeductions.IsNegative() {
		return domain.NewValidationError("withholding.step4b_deductions", "must not be negative")
	}
	if w.Step4cExtraWithholding.IsNegative() {
		return domain.NewValidationError("withholding.step4c_extra_withholding", "must not be negative")
	}
	return nil
}

func validateElections(path string, elections domain.RetirementElectionHistory) error {
	one := decimal.NewFromInt(1)
	for i, e := range elections {
		field := fmt.Sprintf("%s[%d]", path, i)
		switch e.Type {
		case domain.ElectionPretax, domain.ElectionRoth, domain.ElectionAfterTax, "":
		default:
			return domain.NewValidationError(field+".type", "must be pretax, roth, or after_tax, got %q", e.Type)
		}
		switch e.AmountType {
		case domain.AmountPercentage:
			if e.Amount.IsNegative() || e.Amount.GreaterThan(one) {
				return domain.NewValidationError(field+".amount", "percentage must be between 0 and 1, got %s", e.Amount)
			}
		case domain.AmountAbsolute, "":
			if e.Amount.IsNegative() {
				return domain.NewValidationError(field+".amount", "must not be negative")
			}
		default:
			return domain.NewValidationError(field+".amount_type", "must be percentage or absolute, got %q", e.AmountType)
		}
	}
	return nil
}

// ToSequenceInput converts a validated scenario into the simulator's input.
func (s *Scenario) ToSequenceInput() calculation.SequenceInput {
	return calculation.SequenceInput{
		Year:               s.Year,
		ReferencePayDate:   s.ReferencePayDate,
		Frequency:          s.Frequency,
		CompPlan:           s.CompPlan,
		CompHistory:        s.CompPlanHistory.Sorted(),
		Withholding:        s.Withholding,
		Benefits:           s.Benefits,
		RegularElections:   s.Retirement.Regular,
		BonusElections:     s.Retirement.Bonus,
		CatchUpEligible:    s.Retirement.CatchUpEligible,
		Supplementals:      s.Supplementals,
		DeductionOverrides: s.DeductionOverrides,
	}
}
