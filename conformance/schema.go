package conformance

import "gopkg.in/yaml.v3"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Setup       yaml.Node  `yaml:"setup,omitempty"` // program run before every case
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite. Programs are written in
// the AST wire form read by ast.Decode.
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"`   // bool or string
	Player      string      `yaml:"player,omitempty"` // create and run as this username
	Config      *Overrides  `yaml:"config,omitempty"`
	Setup       yaml.Node   `yaml:"setup,omitempty"`
	Program     yaml.Node   `yaml:"program"`
	Expect      Expectation `yaml:"expect"`
}

// Overrides adjusts evaluator settings for one case
type Overrides struct {
	MaxDepth        *int   `yaml:"max_depth,omitempty"`
	TickLimit       *int64 `yaml:"tick_limit,omitempty"`
	InheritedLookup *bool  `yaml:"inherited_lookup,omitempty"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Value yaml.Node `yaml:"value,omitempty"` // exact match; null is a value
	Error string    `yaml:"error,omitempty"` // E_TYPE, E_DIV, etc.
	Type  string    `yaml:"type,omitempty"`  // integer, string, list, ...
	Match string    `yaml:"match,omitempty"` // regex against the error message
}

// HasValue reports whether an exact value is expected
func (e *Expectation) HasValue() bool {
	return e.Value.Kind != 0
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
