package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tagmerge/internal/plan"
)

// Scenario defines a merge conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden files.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Keys is the key set passed to the builder, in order.
	Keys []string `yaml:"keys"`

	// Policy is the resolution policy; empty selects the default.
	Policy string `yaml:"policy,omitempty"`

	// NormalizeKeys enables NFC normalization of key strings.
	NormalizeKeys bool `yaml:"normalize_keys,omitempty"`

	// Left and Right are the input documents as JSON text.
	Left  string `yaml:"left"`
	Right string `yaml:"right"`

	// Expect is the expected merged document as JSON text.
	// Compared structurally, so formatting and member order do not matter.
	Expect string `yaml:"expect,omitempty"`

	// ExpectError is the expected error kind, e.g. "MALFORMED_INPUT".
	// Mutually exclusive with Expect.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Empty keys and documents are allowed: error scenarios need them.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Expect == "" && s.ExpectError == "":
		return fmt.Errorf("one of expect or expect_error is required")
	case s.Expect != "" && s.ExpectError != "":
		return fmt.Errorf("expect and expect_error are mutually exclusive")
	}

	if s.ExpectError != "" {
		if _, err := plan.ParseKind(s.ExpectError); err != nil {
			return fmt.Errorf("expect_error: %w", err)
		}
	}
	if _, err := plan.ParsePolicy(s.Policy); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}
