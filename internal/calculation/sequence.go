package calculation

import (
	"sort"
	"time"

	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/rgehrsitz/paysim/internal/taxrules"
	"github.com/rgehrsitz/paysim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// SequenceInput describes one party's full-year simulation: the pay schedule
// anchor, the compensation and withholding facts, and any irregular events.
type SequenceInput struct {
	Year             int
	ReferencePayDate time.Time
	Frequency        domain.PayFrequency

	// CompHistory wins when non-empty; otherwise CompPlan supplies a single
	// gross for every period.
	CompPlan    *domain.CompPlan
	CompHistory domain.CompPlanHistory

	// Withholding defaults to an unconfigured-party W-4 when nil.
	Withholding *domain.WithholdingConfig

	Benefits domain.BenefitsConfig

	RegularElections domain.RetirementElectionHistory
	BonusElections   domain.RetirementElectionHistory
	CatchUpEligible  bool

	Supplementals      []domain.SupplementalPayEvent
	DeductionOverrides []domain.DeductionOverride
}

// SequenceSimulator replays every pay event of one calendar year in
// chronological order, threading the YTD accumulator and FICA rounding
// balance through each transition. It holds no per-run state and the same
// input always produces the same output.
type SequenceSimulator struct {
	Rules  taxrules.Provider
	logger Logger
}

// NewSequenceSimulator creates a simulator reading rule tables from the given
// provider.
func NewSequenceSimulator(rules taxrules.Provider) *SequenceSimulator {
	return &SequenceSimulator{Rules: rules, logger: NopLogger{}}
}

// SetLogger installs a logger for diagnostic output.
func (s *SequenceSimulator) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	s.logger = l
}

// payEvent is one entry in the merged chronological event list.
type payEvent struct {
	date         time.Time
	kind         domain.PayEventKind
	supplemental domain.SupplementalPayEvent
}

// Simulate runs the full-year state machine: generate the regular pay dates,
// merge in the supplemental events by date, and replay the single-period
// modeler across every event, starting from a zero YTD summary and a fresh
// rounding balance.
func (s *SequenceSimulator) Simulate(in SequenceInput) (*domain.StubSequenceResult, error) {
	if in.ReferencePayDate.IsZero() {
		return nil, domain.NewConfigNotFoundError("no reference pay date to anchor the %d schedule", in.Year)
	}
	if !in.Frequency.IsValid() {
		return nil, domain.NewValidationError("frequency", "unknown pay frequency %q", in.Frequency)
	}
	if in.CompPlan == nil && len(in.CompHistory) == 0 {
		return nil, domain.NewConfigNotFoundError("no comp plan resolves for year %d", in.Year)
	}

	rules, err := s.Rules.RulesFor(in.Year)
	if err != nil {
		return nil, err
	}

	regularDates := RegularPayDates(in.Year, in.ReferencePayDate, in.Frequency)
	if err := checkOverrideAlignment(in.DeductionOverrides, regularDates); err != nil {
		return nil, err
	}

	events := mergeEvents(regularDates, in.Supplementals)

	withholding := domain.DefaultWithholding()
	if in.Withholding != nil {
		withholding = *in.Withholding
	}

	modeler := NewStubModeler(rules)
	modeler.Logger = s.logger
	calc := NewPeriodTaxCalculator(rules)
	deferralLimit := rules.DeferralLimit(in.CatchUpEligible)

	result := &domain.StubSequenceResult{
		Year:      in.Year,
		RulesYear: rules.Year,
	}
	if rules.Year != in.Year {
		s.logger.Infof("no tax rules for %d; using %d", in.Year, rules.Year)
		result.Warnings = append(result.Warnings, domain.WarningRulesYearSubstituted)
	}

	ytd := domain.PaySummary{}
	balance := domain.FicaRoundingBalance{}

	for _, ev := range events {
		var (
			period domain.PaySummary
			warns  []string
		)
		switch ev.kind {
		case domain.EventRegular:
			res, err := s.modelRegular(modeler, in, ev.date, withholding, deferralLimit, ytd, balance)
			if err != nil {
				return nil, err
			}
			period, ytd, balance, warns = res.Current, res.YTD, res.Balance, res.Warnings
			result.PeriodsModeled++
		case domain.EventSupplemental:
			period, balance, warns = s.modelSupplemental(calc, rules, in, ev.supplemental, deferralLimit, ytd, balance)
			ytd = ytd.Add(period)
			ytd.Taxable.SS = decimal.Min(ytd.Taxable.SS, rules.SSWageBase)
			result.SupplementalsIncluded++
		}
		result.Stubs = append(result.Stubs, domain.PeriodResult{
			Date:    ev.date,
			Kind:    ev.kind,
			Current: period,
			YTD:     ytd,
		})
		result.Warnings = appendNew(result.Warnings, warns)
	}

	result.YTD = ytd
	result.Balance = balance
	return result, nil
}

// modelRegular resolves the date's gross, election, and deductions, then runs
// the single-period modeler.
func (s *SequenceSimulator) modelRegular(modeler *StubModeler, in SequenceInput, date time.Time, withholding domain.WithholdingConfig, deferralLimit decimal.Decimal, ytd domain.PaySummary, balance domain.FicaRoundingBalance) (*domain.ModelResult, error) {
	gross, err := resolveGross(in, date)
	if err != nil {
		return nil, err
	}

	desired := decimal.Zero
	reducesFIT := true
	if election, ok := in.RegularElections.AsOf(date); ok {
		desired = election.DesiredContribution(gross)
		reducesFIT = election.Type.ReducesFITTaxable()
	}

	pretax := in.Benefits.PretaxTotal()
	postTax := decimal.Zero
	if ov, ok := overrideFor(in.DeductionOverrides, date); ok {
		pretax = ov.FullyPretax
		postTax = ov.PostTax
	}

	return modeler.ModelPeriod(StubInput{
		Date:                   date,
		Gross:                  gross,
		Frequency:              in.Frequency,
		Withholding:            withholding,
		PretaxBenefits:         pretax,
		ImputedIncome:          in.Benefits.ImputedIncome,
		PostTaxDeductions:      postTax,
		DesiredContribution:    desired,
		ContributionReducesFIT: reducesFIT,
		DeferralLimit:          deferralLimit,
		PriorYTD:               ytd,
		Balance:                balance,
	})
}

// modelSupplemental taxes a bonus or vest at the flat supplemental rate. The
// running rounding balance is shared with regular periods because balance
// tracking is chronological across all events, not per pay type.
func (s *SequenceSimulator) modelSupplemental(calc *PeriodTaxCalculator, rules taxrules.Rules, in SequenceInput, ev domain.SupplementalPayEvent, deferralLimit decimal.Decimal, ytd domain.PaySummary, balance domain.FicaRoundingBalance) (domain.PaySummary, domain.FicaRoundingBalance, []string) {
	contribution := decimal.Zero
	reducesFIT := true
	if ev.RetirementContribution != nil {
		contribution = *ev.RetirementContribution
	} else if election, ok := in.BonusElections.AsOf(ev.Date); ok {
		contribution = election.DesiredContribution(ev.Gross)
		reducesFIT = election.Type.ReducesFITTaxable()
	}
	room := deferralLimit.Sub(ytd.Deductions.Retirement)
	if room.IsNegative() {
		room = decimal.Zero
	}
	contribution = decimal.Min(contribution, room)
	if contribution.IsNegative() {
		contribution = decimal.Zero
	}
	contribution = contribution.Round(2)

	fitTaxable := ev.Gross
	if reducesFIT {
		fitTaxable = fitTaxable.Sub(contribution)
	}
	if fitTaxable.IsNegative() {
		fitTaxable = decimal.Zero
	}
	fitWithheld := fitTaxable.Mul(rules.SupplementalFlatRate).RoundDown(2)

	ss := calc.SocialSecurity(ev.Gross, ytd.Taxable.SS)
	med := calc.Medicare(ev.Gross, ytd.Taxable.Medicare)
	var ssWithheld, medWithheld decimal.Decimal
	ssWithheld, balance.SS = RoundWithCompensation(ss.Withheld, balance.SS)
	medWithheld, balance.Medicare = RoundWithCompensation(med.Withheld, balance.Medicare)

	deductions := domain.DeductionTotals{Retirement: contribution}
	netPay := ev.Gross.Sub(deductions.Total()).Sub(fitWithheld).Sub(ssWithheld).Sub(medWithheld)

	period := domain.PaySummary{
		Gross:      ev.Gross,
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

	var warnings []string
	if ss.Capped {
		warnings = append(warnings, domain.WarningSSWageCapReached)
	}
	if med.ThresholdCrossed {
		warnings = append(warnings, domain.WarningAddlMedicareThreshold)
	}
	return period, balance, warnings
}

// resolveGross picks the gross for a date from the comp plan history when
// present, otherwise from the single comp plan.
func resolveGross(in SequenceInput, date time.Time) (decimal.Decimal, error) {
	if len(in.CompHistory) > 0 {
		gross, ok := in.CompHistory.GrossAsOf(date)
		if !ok {
			if in.CompPlan != nil {
				return in.CompPlan.GrossPerPeriod, nil
			}
			return decimal.Zero, domain.NewConfigNotFoundError("no comp plan entry effective on %s", date.Format("2006-01-02"))
		}
		return gross, nil
	}
	return in.CompPlan.GrossPerPeriod, nil
}

// RegularPayDates generates every regular pay date of the target year by
// walking from a known reference pay date at the configured frequency.
// Weekly and biweekly schedules step by days; semimonthly pays the 15th and
// the last day of each month; monthly keeps the reference's day of month,
// clamped to short months.
func RegularPayDates(year int, reference time.Time, frequency domain.PayFrequency) []time.Time {
	start := dateutil.BeginningOfYear(year)
	end := dateutil.EndOfYear(year)

	var dates []time.Time
	switch frequency {
	case domain.FrequencyWeekly, domain.FrequencyBiweekly:
		step := 7
		if frequency == domain.FrequencyBiweekly {
			step = 14
		}
		d := dateutil.Midnight(reference)
		for d.After(start) {
			d = dateutil.AddDays(d, -step)
		}
		for d.Before(start) {
			d = dateutil.AddDays(d, step)
		}
		for !d.After(end) {
			dates = append(dates, d)
			d = dateutil.AddDays(d, step)
		}
	case domain.FrequencySemimonthly:
		for month := time.January; month <= time.December; month++ {
			dates = append(dates,
				time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
				dateutil.LastDayOfMonth(year, month))
		}
	case domain.FrequencyMonthly:
		day := reference.Day()
		for month := time.January; month <= time.December; month++ {
			dates = append(dates, dateutil.DayOfMonthClamped(year, month, day))
		}
	}
	return dates
}

// mergeEvents interleaves regular dates and supplemental events in
// chronological order. On a shared date the regular paycheck is processed
// first, so the supplemental event sees the regular period's YTD wages.
func mergeEvents(regular []time.Time, supplementals []domain.SupplementalPayEvent) []payEvent {
	events := make([]payEvent, 0, len(regular)+len(supplementals))
	for _, d := range regular {
		events = append(events, payEvent{date: d, kind: domain.EventRegular})
	}
	for _, sup := range supplementals {
		events = append(events, payEvent{
			date:         dateutil.Midnight(sup.Date),
			kind:         domain.EventSupplemental,
			supplemental: sup,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].date.Equal(events[j].date) {
			return events[i].date.Before(events[j].date)
		}
		return events[i].kind == domain.EventRegular && events[j].kind == domain.EventSupplemental
	})
	return events
}

// checkOverrideAlignment rejects any per-date deduction override whose date
// matches no generated pay date, before any simulation runs.
func checkOverrideAlignment(overrides []domain.DeductionOverride, dates []time.Time) error {
	for _, ov := range overrides {
		aligned := false
		for _, d := range dates {
			if dateutil.SameDay(ov.Date, d) {
				aligned = true
				break
			}
		}
		if !aligned {
			return domain.NewAlignmentError("deduction override date %s matches no regular pay date", ov.Date.Format("2006-01-02"))
		}
	}
	return nil
}

func overrideFor(overrides []domain.DeductionOverride, date time.Time) (domain.DeductionOverride, bool) {
	for _, ov := range overrides {
		if dateutil.SameDay(ov.Date, date) {
			return ov, true
		}
	}
	return domain.DeductionOverride{}, false
}

// appendNew appends only warnings not already present, preserving first
// occurrence order.
func appendNew(existing, additions []string) []string {
	for _, w := range additions {
		seen := false
		for _, e := range existing {
			if e == w {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, w)
		}
	}
	return existing
}
