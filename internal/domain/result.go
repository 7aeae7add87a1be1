package domain

import (
	"time"
)

// Warning identifiers attached to results when an expected annual cap or
// threshold state is reached. These are informational, never errors.
const (
	WarningSSWageCapReached      = "social security wage cap reached"
	WarningAddlMedicareThreshold = "additional medicare withholding threshold crossed"
	WarningDeferralLimitReached  = "401(k) elective deferral limit reached"
	WarningRulesYearSubstituted  = "tax rules for requested year unavailable; nearest year used"
)

// ModelResult is the outcome of modeling a single pay period.
type ModelResult struct {
	Current   PaySummary          `json:"current"`
	YTD       PaySummary          `json:"ytd"`
	Balance   FicaRoundingBalance `json:"ficaBalance"`
	RulesYear int                 `json:"rulesYear"`
	Warnings  []string            `json:"warnings,omitempty"`
}

// PayEventKind distinguishes regular paychecks from supplemental events in a
// simulated sequence.
type PayEventKind string

const (
	EventRegular      PayEventKind = "regular"
	EventSupplemental PayEventKind = "supplemental"
)

// PeriodResult is one event's figures within a full-year simulation, together
// with the YTD snapshot immediately after it.
type PeriodResult struct {
	Date    time.Time    `json:"date"`
	Kind    PayEventKind `json:"kind"`
	Current PaySummary   `json:"current"`
	YTD     PaySummary   `json:"ytd"`
}

// StubSequenceResult is the outcome of replaying every pay event of one
// calendar year in chronological order.
type StubSequenceResult struct {
	Year                  int                 `json:"year"`
	RulesYear             int                 `json:"rulesYear"`
	Stubs                 []PeriodResult      `json:"stubs"`
	YTD                   PaySummary          `json:"ytd"`
	Balance               FicaRoundingBalance `json:"ficaBalance"`
	PeriodsModeled        int                 `json:"periodsModeled"`
	SupplementalsIncluded int                 `json:"supplementalsIncluded"`
	Warnings              []string            `json:"warnings,omitempty"`
}

// StubAt returns the period result for the given pay date, matching on
// calendar day.
func (r *StubSequenceResult) StubAt(date time.Time) (PeriodResult, bool) {
	for _, s := range r.Stubs {
		if sameDay(s.Date, date) {
			return s, true
		}
	}
	return PeriodResult{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
