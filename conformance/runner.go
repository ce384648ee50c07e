package conformance

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"echo/ast"
	"echo/config"
	"echo/eval"
	"echo/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Every case gets a fresh evaluator over
// a freshly opened store, so cases cannot see each other's objects.
type Runner struct {
	cfg config.Config
}

// NewRunner creates a runner using cfg as the base settings for each case
func NewRunner(cfg config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// decodeProgram decodes an optional program node
func decodeProgram(n *yaml.Node) (*ast.Program, error) {
	prog := &ast.Program{}
	if n.Kind == 0 {
		return prog, nil
	}
	if n.Kind == yaml.SequenceNode {
		if err := ast.DecodeNode(n, &prog.Body); err != nil {
			return nil, err
		}
		return prog, nil
	}
	if err := ast.DecodeNode(n, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// settings applies a case's overrides to the base config
func (r *Runner) settings(o *Overrides) config.Config {
	cfg := r.cfg
	if o == nil {
		return cfg
	}
	if o.MaxDepth != nil {
		cfg.MaxDepth = *o.MaxDepth
	}
	if o.TickLimit != nil {
		cfg.TickLimit = *o.TickLimit
	}
	if o.InheritedLookup != nil {
		cfg.InheritedLookup = *o.InheritedLookup
	}
	return cfg
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	// Check if test should be skipped
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	fail := func(err error) TestResult {
		return TestResult{Test: test, Error: err}
	}

	prog, err := decodeProgram(&test.Test.Program)
	if err != nil {
		return fail(fmt.Errorf("decode program: %w", err))
	}

	cfg := r.settings(test.Test.Config)
	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return fail(fmt.Errorf("open store: %w", err))
	}
	defer closeStore()

	e, err := eval.NewEvaluator(store, cfg)
	if err != nil {
		return fail(fmt.Errorf("create evaluator: %w", err))
	}

	if test.Test.Player != "" {
		if _, err := e.CreatePlayer(test.Test.Player); err != nil {
			return fail(fmt.Errorf("create player: %w", err))
		}
		if err := e.SwitchPlayer(test.Test.Player); err != nil {
			return fail(fmt.Errorf("switch player: %w", err))
		}
	}

	// Suite setup, then case setup
	for _, node := range []*yaml.Node{&test.Suite.Setup, &test.Test.Setup} {
		setup, err := decodeProgram(node)
		if err != nil {
			return fail(fmt.Errorf("decode setup: %w", err))
		}
		if _, err := e.Eval(setup); err != nil {
			return fail(fmt.Errorf("setup failed: %w", err))
		}
	}

	val, evalErr := e.Eval(prog)
	passed, err := checkExpectation(&test.Test.Expect, val, evalErr)
	return TestResult{
		Test:   test,
		Passed: passed,
		Error:  err,
	}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the result matches the expected outcome
func checkExpectation(expect *Expectation, val types.Value, evalErr error) (bool, error) {
	// Check for expected error
	if expect.Error != "" {
		expectedErr, ok := types.ErrorFromString(expect.Error)
		if !ok {
			return false, fmt.Errorf("unknown error code: %s", expect.Error)
		}
		if evalErr == nil {
			return false, fmt.Errorf("expected error %s, got value: %s", expect.Error, val)
		}
		var e *eval.Error
		if !errors.As(evalErr, &e) {
			return false, fmt.Errorf("expected error %s, got %v", expect.Error, evalErr)
		}
		if e.Code != expectedErr {
			return false, fmt.Errorf("expected error %s, got %v", expect.Error, e)
		}
		if expect.Match != "" {
			re, err := regexp.Compile(expect.Match)
			if err != nil {
				return false, fmt.Errorf("bad match pattern: %w", err)
			}
			if !re.MatchString(e.Message) {
				return false, fmt.Errorf("error message %q does not match %q", e.Message, expect.Match)
			}
		}
		return true, nil
	}

	// Check for normal result
	if evalErr != nil {
		return false, fmt.Errorf("unexpected error: %v", evalErr)
	}

	// Check expected value
	if expect.HasValue() {
		var raw interface{}
		if err := expect.Value.Decode(&raw); err != nil {
			return false, fmt.Errorf("decode expected value: %w", err)
		}
		expectedVal, err := convertYAMLValue(raw)
		if err != nil {
			return false, fmt.Errorf("failed to convert expected value: %w", err)
		}
		if !sameValue(val, expectedVal) {
			return false, fmt.Errorf("expected %s, got %s", expectedVal, val)
		}
		return true, nil
	}

	// Check expected type
	if expect.Type != "" {
		if got := types.TypeName(val); got != expect.Type {
			return false, fmt.Errorf("expected type %s, got %s", expect.Type, got)
		}
		return true, nil
	}

	return false, fmt.Errorf("no expectation specified")
}

// sameValue is equality without numeric promotion, so an expected 1.0
// does not accept an integer result
func sameValue(got, want types.Value) bool {
	if got.Type() != want.Type() {
		return false
	}
	switch w := want.(type) {
	case types.ListValue:
		g := got.(types.ListValue)
		if g.Len() != w.Len() {
			return false
		}
		for i, elem := range w.Elements() {
			if !sameValue(g.Get(i), elem) {
				return false
			}
		}
		return true
	case types.MapValue:
		g := got.(types.MapValue)
		if g.Len() != w.Len() {
			return false
		}
		for _, k := range w.Keys() {
			gv, ok := g.Get(k)
			wv, _ := w.Get(k)
			if !ok || !sameValue(gv, wv) {
				return false
			}
		}
		return true
	default:
		return got.Equal(want)
	}
}

var wellKnownRef = regexp.MustCompile(`^#[01]$`)

// convertYAMLValue converts a decoded YAML value to a runtime value. The
// strings "#0" and "#1" denote the system and root objects.
func convertYAMLValue(v interface{}) (types.Value, error) {
	switch val := v.(type) {
	case nil:
		return types.Null, nil
	case int:
		return types.NewInt(int64(val)), nil
	case int64:
		return types.NewInt(val), nil
	case float64:
		return types.NewFloat(val), nil
	case string:
		if wellKnownRef.MatchString(val) {
			return types.NewObj(types.ObjID(val)), nil
		}
		return types.NewStr(val), nil
	case bool:
		return types.NewBool(val), nil
	case []interface{}:
		elements := make([]types.Value, len(val))
		for i, elem := range val {
			v, err := convertYAMLValue(elem)
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return types.NewList(elements), nil
	case map[string]interface{}:
		pairs := make(map[string]types.Value, len(val))
		for k, v := range val {
			converted, err := convertYAMLValue(v)
			if err != nil {
				return nil, err
			}
			pairs[k] = converted
		}
		return types.NewMap(pairs), nil
	default:
		return nil, fmt.Errorf("unsupported YAML type: %T", v)
	}
}
