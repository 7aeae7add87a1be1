package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/paysim/internal/domain"
)

// ConsoleFormatter renders a simulation as a fixed-width table with a YTD
// summary block, suitable for terminal review.
type ConsoleFormatter struct{}

// Name returns the registry name of the formatter.
func (ConsoleFormatter) Name() string { return "console" }

// Format renders the period table and YTD summary.
func (ConsoleFormatter) Format(result *domain.StubSequenceResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "PAYROLL SIMULATION %d", result.Year)
	if result.RulesYear != result.Year {
		fmt.Fprintf(&buf, " (using %d tax rules)", result.RulesYear)
	}
	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("=", 118) + "\n")
	fmt.Fprintf(&buf, "%-12s %-12s %12s %12s %12s %12s %12s %12s %12s\n",
		"DATE", "TYPE", "GROSS", "PRETAX", "401K", "FIT", "SS", "MEDICARE", "NET")
	buf.WriteString(strings.Repeat("-", 118) + "\n")

	for _, stub := range result.Stubs {
		fmt.Fprintf(&buf, "%-12s %-12s %12s %12s %12s %12s %12s %12s %12s\n",
			stub.Date.Format("2006-01-02"),
			string(stub.Kind),
			stub.Current.Gross.StringFixed(2),
			stub.Current.Deductions.FullyPretax.StringFixed(2),
			stub.Current.Deductions.Retirement.StringFixed(2),
			stub.Current.Withheld.FIT.StringFixed(2),
			stub.Current.Withheld.SS.StringFixed(2),
			stub.Current.Withheld.Medicare.StringFixed(2),
			stub.Current.NetPay.StringFixed(2))
	}

	buf.WriteString(strings.Repeat("=", 118) + "\n")
	fmt.Fprintf(&buf, "Regular periods: %d   Supplemental events: %d\n\n",
		result.PeriodsModeled, result.SupplementalsIncluded)

	buf.WriteString("YEAR-TO-DATE SUMMARY\n")
	buf.WriteString("--------------------\n")
	fmt.Fprintf(&buf, "Gross:               %s\n", FormatCurrency(result.YTD.Gross))
	fmt.Fprintf(&buf, "Pretax benefits:     %s\n", FormatCurrency(result.YTD.Deductions.FullyPretax))
	fmt.Fprintf(&buf, "401(k):              %s\n", FormatCurrency(result.YTD.Deductions.Retirement))
	fmt.Fprintf(&buf, "Post-tax deductions: %s\n", FormatCurrency(result.YTD.Deductions.PostTax))
	fmt.Fprintf(&buf, "FIT withheld:        %s\n", FormatCurrency(result.YTD.Withheld.FIT))
	fmt.Fprintf(&buf, "SS withheld:         %s (taxable %s)\n", FormatCurrency(result.YTD.Withheld.SS), FormatCurrency(result.YTD.Taxable.SS))
	fmt.Fprintf(&buf, "Medicare withheld:   %s\n", FormatCurrency(result.YTD.Withheld.Medicare))
	fmt.Fprintf(&buf, "Net pay:             %s\n", FormatCurrency(result.YTD.NetPay))

	if len(result.Warnings) > 0 {
		buf.WriteString("\nNOTES\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&buf, "  - %s\n", w)
		}
	}
	return buf.Bytes(), nil
}
