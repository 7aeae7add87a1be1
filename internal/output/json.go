package output

import (
	"encoding/json"

	"github.com/rgehrsitz/paysim/internal/domain"
)

// JSONFormatter renders a simulation as indented JSON for downstream tooling.
type JSONFormatter struct{}

// Name returns the registry name of the formatter.
func (JSONFormatter) Name() string { return "json" }

// Format marshals the full result, period list included.
func (JSONFormatter) Format(result *domain.StubSequenceResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
