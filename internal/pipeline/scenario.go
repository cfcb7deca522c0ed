package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named list of pipeline runs with expected outcomes.
//
//	name: sort-desc
//	description: descending sort on two keys
//	steps:
//	  - kind: sort
//	    arg: "field1,field2:desc"
//	    expect:
//	      shape: sort_shape
//	      explain_contains: ["Direction: DESCENDING"]
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. Without Expect the run only has to succeed.
type Step struct {
	Kind   string  `yaml:"kind"`
	Arg    string  `yaml:"arg"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists what a step's report must show. Empty fields are not checked.
type Expect struct {
	Shape        string `yaml:"shape,omitempty"`
	ASTDebug     string `yaml:"ast_debug,omitempty"`
	LogicalDebug string `yaml:"logical_debug,omitempty"`

	// Explain must equal the explain report exactly.
	Explain string `yaml:"explain,omitempty"`

	// ExplainContains lists substrings that must each appear in the
	// explain report.
	ExplainContains []string `yaml:"explain_contains,omitempty"`

	// Error, when set, means the step must fail with an error whose
	// message contains it. No other field is checked then.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes a scenario from YAML. Unknown fields are rejected so
// a misspelled key fails loudly instead of silently skipping a check.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid scenario: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return nil, fmt.Errorf("invalid scenario: file must hold a single YAML document")
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if step.Kind == "" {
			return fmt.Errorf("steps[%d]: kind is required", i)
		}
		if e := step.Expect; e != nil && e.Error != "" {
			if e.Shape != "" || e.ASTDebug != "" || e.LogicalDebug != "" || e.Explain != "" || len(e.ExplainContains) > 0 {
				return fmt.Errorf("steps[%d].expect: error cannot be combined with report checks", i)
			}
		}
	}
	return nil
}
