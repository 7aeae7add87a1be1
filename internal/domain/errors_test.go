package domain

import (
	"fmt"
	"testing"
)

func TestModelError_MessageShape(t *testing.T) {
	err := NewValidationError("comp_plan.gross_per_period", "must not be negative")
	want := "validation: comp_plan.gross_per_period: must not be negative"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	err = NewConfigNotFoundError("no comp plan resolves for year %d", 2025)
	want = "config_not_found: no comp plan resolves for year 2025"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestIsCode(t *testing.T) {
	err := NewAlignmentError("override date %s matches no pay date", "2025-01-11")

	if !IsCode(err, ErrCodeAlignment) {
		t.Error("Expected the alignment code to match")
	}
	if IsCode(err, ErrCodeValidation) {
		t.Error("Expected a non-matching code to report false")
	}
	if IsCode(nil, ErrCodeAlignment) {
		t.Error("Expected nil to match nothing")
	}
}

func TestIsCode_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading scenario: %w", NewValidationError("year", "must be between 2000 and 2100, got %d", 1985))

	if !IsCode(wrapped, ErrCodeValidation) {
		t.Error("Expected the code to match through wrapping")
	}
}
