package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one end-to-end query test: the points to seed, the query
// to evaluate, and the expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden fixtures are stored
	// under this name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Points is the dataset seeded before the query runs. May be empty
	// for scenarios that never reach the store, such as parse failures.
	Points []PointSpec `yaml:"points,omitempty"`

	// Query is the JSON query document, verbatim.
	Query string `yaml:"query"`

	// Expect declares the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// PointSpec is one seeded inspection point.
type PointSpec struct {
	ID       int64   `yaml:"id"`
	Group    int64   `yaml:"group"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Category int     `yaml:"category,omitempty"`
}

// Expectation declares the expected outcome of a run. Fields left out are
// not checked; a nil ids or lines list is "don't check" while an explicit
// empty list asserts emptiness.
type Expectation struct {
	// IDs is the expected selection, as ascending point ids.
	IDs []int64 `yaml:"ids,omitempty"`

	// Lines is the expected rendered output, one "<x> <y>" entry per
	// selected point, in output order.
	Lines []string `yaml:"lines,omitempty"`

	// Error is a substring the failure message must contain. When set,
	// the run must fail and ids/lines must be absent.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Returns an error if
// the file doesn't exist, is malformed, contains unknown fields (typos),
// or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	// Strict decoding catches typos like "expects:" for "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and coherent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Query == "" {
		return fmt.Errorf("query is required")
	}

	seen := make(map[int64]struct{}, len(s.Points))
	for i, p := range s.Points {
		if p.ID < 1 {
			return fmt.Errorf("points[%d]: id must be positive, got %d", i, p.ID)
		}
		if p.Group < 1 {
			return fmt.Errorf("points[%d]: group must be positive, got %d", i, p.Group)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("points[%d]: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if s.Expect.Error != "" && (s.Expect.IDs != nil || s.Expect.Lines != nil) {
		return fmt.Errorf("expect: error cannot combine with ids or lines")
	}
	if s.Expect.Error == "" && s.Expect.IDs == nil && s.Expect.Lines == nil {
		return fmt.Errorf("expect: at least one of ids, lines, or error is required")
	}

	return nil
}
