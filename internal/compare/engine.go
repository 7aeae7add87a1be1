package compare

import (
	"github.com/rgehrsitz/paysim/internal/calculation"
	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/rgehrsitz/paysim/internal/taxrules"
	"github.com/shopspring/decimal"
)

// Comparator re-derives an observed pay stub from the model and surfaces
// per-field discrepancies for human investigation.
type Comparator struct {
	Rules  taxrules.Provider
	Logger calculation.Logger
}

// NewComparator creates a comparator reading rule tables from the given
// provider.
func NewComparator(rules taxrules.Provider) *Comparator {
	return &Comparator{Rules: rules, Logger: calculation.NopLogger{}}
}

// ValidateRecord runs the self-contained mode: prior YTD is derived by
// subtracting the observed current period from the observed YTD, the
// single-period modeler is run once with the record's own gross and
// deductions, and every leaf of the returned current and YTD summaries is
// diffed against the record.
//
// The incoming FICA rounding balance is unknowable from a single stub and is
// taken as zero, so a one-cent diff on a FICA stream is within the model's
// own uncertainty; the cent tolerance absorbs it.
func (c *Comparator) ValidateRecord(record ObservedRecord) (*ValidationReport, error) {
	rules, err := c.Rules.RulesFor(record.Date.Year())
	if err != nil {
		return nil, err
	}

	priorYTD := record.YTD.Sub(record.Current)

	withholding := domain.DefaultWithholding()
	if record.Withholding != nil {
		withholding = *record.Withholding
	}

	modeler := calculation.NewStubModeler(rules)
	modeler.Logger = c.logger()
	res, err := modeler.ModelPeriod(calculation.StubInput{
		Date:                   record.Date,
		Gross:                  record.Current.Gross,
		Frequency:              record.Frequency,
		Withholding:            withholding,
		PretaxBenefits:         record.Current.Deductions.FullyPretax,
		PostTaxDeductions:      record.Current.Deductions.PostTax,
		DesiredContribution:    record.Current.Deductions.Retirement,
		ContributionReducesFIT: true,
		DeferralLimit:          rules.DeferralLimit(false),
		PriorYTD:               priorYTD,
		Balance:                domain.FicaRoundingBalance{},
	})
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{
		Date:      record.Date,
		RulesYear: res.RulesYear,
		Warnings:  res.Warnings,
	}
	report.Diffs = append(report.Diffs, diffSummaries("current", res.Current, record.Current)...)
	report.Diffs = append(report.Diffs, diffSummaries("ytd", res.YTD, record.YTD)...)
	return report, nil
}

// ValidateAgainstSequence runs the sequence-based mode: the whole year is
// reconstructed through the sequence simulator, the modeled period matching
// the record's date is located, and its current and YTD summaries are diffed
// against the record the same way as the self-contained mode.
func (c *Comparator) ValidateAgainstSequence(in calculation.SequenceInput, record ObservedRecord) (*ValidationReport, error) {
	sim := calculation.NewSequenceSimulator(c.Rules)
	sim.SetLogger(c.logger())

	seq, err := sim.Simulate(in)
	if err != nil {
		return nil, err
	}
	stub, ok := seq.StubAt(record.Date)
	if !ok {
		return nil, domain.NewAlignmentError("record date %s matches no modeled pay event", record.Date.Format("2006-01-02"))
	}

	report := &ValidationReport{
		Date:      record.Date,
		RulesYear: seq.RulesYear,
		Warnings:  seq.Warnings,
	}
	report.Diffs = append(report.Diffs, diffSummaries("current", stub.Current, record.Current)...)
	report.Diffs = append(report.Diffs, diffSummaries("ytd", stub.YTD, record.YTD)...)
	return report, nil
}

// SupplementalsFromRecords infers supplemental pay events for a year from
// previously imported records: any observed period whose gross exceeds the
// regular gross for its date is treated as carrying a supplemental payment of
// the difference.
func SupplementalsFromRecords(records []ObservedRecord, regularGross decimal.Decimal) []domain.SupplementalPayEvent {
	var events []domain.SupplementalPayEvent
	for _, r := range records {
		extra := r.Current.Gross.Sub(regularGross)
		if extra.GreaterThan(decimal.Zero) {
			events = append(events, domain.SupplementalPayEvent{Date: r.Date, Gross: extra})
		}
	}
	return events
}

func (c *Comparator) logger() calculation.Logger {
	if c.Logger == nil {
		return calculation.NopLogger{}
	}
	return c.Logger
}
