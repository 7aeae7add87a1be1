package compare

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatTable renders a validation report as a fixed-width console table.
func FormatTable(report *ValidationReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Validation for %s (rules year %d)\n", report.Date.Format("2006-01-02"), report.RulesYear)
	if report.Clean() {
		sb.WriteString("No discrepancies: every field matches the model within $0.01\n")
	} else {
		fmt.Fprintf(&sb, "%-28s %14s %14s %14s\n", "FIELD", "MODELED", "ACTUAL", "DIFF")
		sb.WriteString(strings.Repeat("-", 74) + "\n")
		for _, d := range report.Diffs {
			fmt.Fprintf(&sb, "%-28s %14s %14s %14s\n",
				d.Field, d.Modeled.StringFixed(2), d.Actual.StringFixed(2), d.Diff.StringFixed(2))
		}
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(&sb, "note: %s\n", w)
	}
	return sb.String()
}

// FormatJSON renders a validation report as indented JSON.
func FormatJSON(report *ValidationReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
