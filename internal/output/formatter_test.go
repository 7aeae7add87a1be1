package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleResult() *domain.StubSequenceResult {
	period := domain.PaySummary{
		Gross: decimal.NewFromInt(5000),
		Deductions: domain.DeductionTotals{
			FullyPretax: decimal.NewFromInt(200),
			Retirement:  decimal.NewFromInt(500),
		},
		Taxable: domain.TaxAmounts{
			FIT:      decimal.NewFromInt(4300),
			SS:       decimal.NewFromInt(4800),
			Medicare: decimal.NewFromInt(4800),
		},
		Withheld: domain.TaxAmounts{
			FIT:      decimal.NewFromFloat(464.07),
			SS:       decimal.NewFromFloat(297.60),
			Medicare: decimal.NewFromFloat(69.60),
		},
		NetPay: decimal.NewFromFloat(3468.73),
	}
	return &domain.StubSequenceResult{
		Year:      2025,
		RulesYear: 2025,
		Stubs: []domain.PeriodResult{{
			Date:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			Kind:    domain.EventRegular,
			Current: period,
			YTD:     period,
		}},
		YTD:            period,
		PeriodsModeled: 1,
		Warnings:       []string{domain.WarningSSWageCapReached},
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"table", "console"},
		{"", "console"},
		{"json", "json"},
		{"csv", "csv"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.name)
		if f == nil {
			t.Errorf("GetFormatterByName(%q) = nil", tt.name)
			continue
		}
		if f.Name() != tt.want {
			t.Errorf("GetFormatterByName(%q).Name() = %s, want %s", tt.name, f.Name(), tt.want)
		}
	}
	if GetFormatterByName("xml") != nil {
		t.Error("Expected nil for an unsupported format")
	}
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"PAYROLL SIMULATION 2025",
		"2025-01-10",
		"regular",
		"464.07",
		"YEAR-TO-DATE SUMMARY",
		"$3468.73",
		domain.WarningSSWageCapReached,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestConsoleFormatter_FlagsSubstitutedRulesYear(t *testing.T) {
	result := sampleResult()
	result.Year = 2026

	data, err := ConsoleFormatter{}.Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(data), "(using 2025 tax rules)") {
		t.Error("Expected the substituted rules year to be called out")
	}
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["year"] != float64(2025) {
		t.Errorf("Expected year 2025, got %v", decoded["year"])
	}
	if _, ok := decoded["stubs"]; !ok {
		t.Error("Expected a stubs array in the output")
	}
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	// Header, one period row, one YTD row.
	if len(records) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(records))
	}
	if records[0][0] != "date" || records[0][len(records[0])-1] != "net_pay" {
		t.Errorf("Unexpected header %v", records[0])
	}
	if records[1][0] != "2025-01-10" || records[1][1] != "regular" {
		t.Errorf("Unexpected period row %v", records[1])
	}
	if records[2][0] != "ytd" {
		t.Errorf("Expected a trailing ytd row, got %v", records[2])
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(decimal.NewFromFloat(1234.5)); got != "$1234.50" {
		t.Errorf("Expected $1234.50, got %s", got)
	}
	if got := FormatCurrency(decimal.NewFromFloat(-12.34)); got != "-$12.34" {
		t.Errorf("Expected -$12.34, got %s", got)
	}
}
