package taxrules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/paysim/internal/domain"
	"github.com/shopspring/decimal"
)

func TestStaticProvider_ExactYear(t *testing.T) {
	provider := NewDefaultProvider()

	rules, err := provider.RulesFor(2025)
	if err != nil {
		t.Fatalf("RulesFor failed: %v", err)
	}
	if rules.Year != 2025 {
		t.Errorf("Expected year 2025, got %d", rules.Year)
	}
	if rules.SSWageBase.StringFixed(2) != "176100.00" {
		t.Errorf("Expected wage base 176100.00, got %s", rules.SSWageBase.StringFixed(2))
	}
}

func TestStaticProvider_NearestYearFallback(t *testing.T) {
	provider := NewStaticProvider(
		Rules{Year: 2023, SSWageBase: decimal.NewFromInt(160200)},
		Rules{Year: 2025, SSWageBase: decimal.NewFromInt(176100)},
	)

	rules, err := provider.RulesFor(2030)
	if err != nil {
		t.Fatalf("RulesFor failed: %v", err)
	}
	if rules.Year != 2025 {
		t.Errorf("Expected fallback to 2025, got %d", rules.Year)
	}
}

func TestStaticProvider_TieResolvesToEarlierYear(t *testing.T) {
	provider := NewStaticProvider(
		Rules{Year: 2023},
		Rules{Year: 2025},
	)

	rules, err := provider.RulesFor(2024)
	if err != nil {
		t.Fatalf("RulesFor failed: %v", err)
	}
	if rules.Year != 2023 {
		t.Errorf("Expected the earlier year on a tie, got %d", rules.Year)
	}
}

func TestStaticProvider_EmptyTableErrors(t *testing.T) {
	provider := NewStaticProvider()

	if _, err := provider.RulesFor(2025); err == nil {
		t.Error("Expected an error from an empty provider")
	}
}

func TestBracketsFor_Step2OnlyAffectsMarriedJointly(t *testing.T) {
	rules := Rules2025()

	mfj := rules.BracketsFor(domain.FilingMarriedJointly, true)
	if !mfj[1].Threshold.Equal(rules.WithholdingSingle[1].Threshold) {
		t.Error("Expected the single table for MFJ with step 2 checked")
	}
	hoh := rules.BracketsFor(domain.FilingHeadOfHousehold, true)
	if !hoh[1].Threshold.Equal(rules.WithholdingHeadOfHousehold[1].Threshold) {
		t.Error("Expected step 2 to leave head-of-household on its own table")
	}
}

func TestDeferralLimit_CatchUp(t *testing.T) {
	rules := Rules2025()

	if rules.DeferralLimit(false).StringFixed(2) != "23500.00" {
		t.Errorf("Expected 23500.00, got %s", rules.DeferralLimit(false).StringFixed(2))
	}
	if rules.DeferralLimit(true).StringFixed(2) != "31000.00" {
		t.Errorf("Expected 31000.00, got %s", rules.DeferralLimit(true).StringFixed(2))
	}
}

const rules2026YAML = `
year: 2026
ss_wage_base: "183600"
ss_rate: "0.062"
medicare_rate: "0.0145"
additional_medicare_rate: "0.009"
additional_medicare_withholding_threshold: "200000"
additional_medicare_threshold_mfj: "250000"
elective_deferral_limit: "24500"
catch_up_limit: "8000"
supplemental_flat_rate: "0.22"
withholding_single:
  - threshold: "0"
    base_tax: "0"
    rate: "0"
  - threshold: "6550"
    base_tax: "0"
    rate: "0.10"
`

func TestLoadDir_LayeredOverDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2026.yaml"), []byte(rules2026YAML), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	provider, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	loaded, err := provider.RulesFor(2026)
	if err != nil {
		t.Fatalf("RulesFor 2026 failed: %v", err)
	}
	if loaded.SSWageBase.StringFixed(2) != "183600.00" {
		t.Errorf("Expected loaded wage base 183600.00, got %s", loaded.SSWageBase.StringFixed(2))
	}
	if loaded.DeferralLimit(true).StringFixed(2) != "32500.00" {
		t.Errorf("Expected loaded deferral room 32500.00, got %s", loaded.DeferralLimit(true).StringFixed(2))
	}

	// The compiled-in year is untouched.
	builtin, err := provider.RulesFor(2025)
	if err != nil {
		t.Fatalf("RulesFor 2025 failed: %v", err)
	}
	if builtin.SSWageBase.StringFixed(2) != "176100.00" {
		t.Errorf("Expected builtin wage base 176100.00, got %s", builtin.SSWageBase.StringFixed(2))
	}
}

func TestLoadDir_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	provider, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if _, err := provider.RulesFor(2025); err != nil {
		t.Errorf("Expected defaults to survive, got %v", err)
	}
}

func TestLoadDir_RejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2026.yaml"), []byte("year: 2026\nss_wage_bass: \"183600\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	if _, err := LoadDir(dir); err == nil {
		t.Error("Expected a misspelled field to fail strict decoding")
	}
}

func TestLoadDir_RejectsYearMismatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2027.yaml"), []byte("year: 2026\n"), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	if _, err := LoadDir(dir); err == nil {
		t.Error("Expected a filename/year mismatch to be rejected")
	}
}

func TestLoadDir_FillsYearFromFilename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2026.yml"), []byte("ss_wage_base: \"183600\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	provider, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	rules, err := provider.RulesFor(2026)
	if err != nil {
		t.Fatalf("RulesFor failed: %v", err)
	}
	if rules.Year != 2026 {
		t.Errorf("Expected the filename year 2026, got %d", rules.Year)
	}
}
