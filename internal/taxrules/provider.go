package taxrules

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Provider supplies the rule set for a calendar year. Implementations fall
// back to the nearest configured year for unknown years; the Year field of
// the returned Rules reports which year was actually used, and callers should
// surface a substitution to the user.
type Provider interface {
	RulesFor(year int) (Rules, error)
}

// StaticProvider serves an in-memory, year-keyed rules table. The table is
// read-only after construction and safe for concurrent lookups.
type StaticProvider struct {
	rules map[int]Rules
}

// NewStaticProvider creates a provider from explicit rule sets.
func NewStaticProvider(rules ...Rules) *StaticProvider {
	m := make(map[int]Rules, len(rules))
	for _, r := range rules {
		m[r.Year] = r
	}
	return &StaticProvider{rules: m}
}

// NewDefaultProvider creates a provider backed by the compiled-in rule sets.
func NewDefaultProvider() *StaticProvider {
	return NewStaticProvider(Rules2025())
}

// RulesFor returns the rules for year, or the nearest configured year when
// the requested one is absent. Ties resolve to the earlier year.
func (p *StaticProvider) RulesFor(year int) (Rules, error) {
	if len(p.rules) == 0 {
		return Rules{}, fmt.Errorf("no tax rules configured")
	}
	if r, ok := p.rules[year]; ok {
		return r, nil
	}
	years := make([]int, 0, len(p.rules))
	for y := range p.rules {
		years = append(years, y)
	}
	sort.Ints(years)
	best := years[0]
	for _, y := range years[1:] {
		if abs(y-year) < abs(best-year) {
			best = y
		}
	}
	return p.rules[best], nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var ruleFilePattern = regexp.MustCompile(`^(\d{4})\.ya?ml$`)

// LoadDir builds a provider from year-named rule files (2025.yaml, 2026.yaml,
// ...) in dir. A file replaces the compiled-in rules for its year; other
// years keep the defaults. Files are decoded strictly: an unknown key is an
// error, not a silent default.
func LoadDir(dir string) (*StaticProvider, error) {
	provider := NewDefaultProvider()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := ruleFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		rules, err := loadRulesFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if rules.Year == 0 {
			rules.Year = year
		}
		if rules.Year != year {
			return nil, fmt.Errorf("rules file %s declares year %d", entry.Name(), rules.Year)
		}
		provider.rules[rules.Year] = rules
	}
	return provider, nil
}

func loadRulesFile(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	var rules Rules
	if err := UnmarshalStrict(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return rules, nil
}

// UnmarshalStrict decodes yaml into out, rejecting unknown fields so a typo
// in a rules or scenario file surfaces as an error instead of a default.
func UnmarshalStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}
