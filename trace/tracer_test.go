package trace

import (
	"bytes"
	"strings"
	"testing"

	"echo/types"
)

func TestTracerFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		verb    string
		traced  bool
	}{
		{"no filters", nil, "greet", true},
		{"glob match", []string{"gr*"}, "greet", true},
		{"glob miss", []string{"do_*"}, "greet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tr := New(true, tt.filters, &buf)
			tr.VerbCall(types.RootObject, tt.verb, []types.Value{types.NewInt(1)}, types.SystemObject, types.SystemObject)
			if got := buf.Len() > 0; got != tt.traced {
				t.Errorf("Expected traced=%v, got output %q", tt.traced, buf.String())
			}
		})
	}
}

func TestTracerOutput(t *testing.T) {
	var buf bytes.Buffer
	tr := New(true, nil, &buf)
	tr.VerbCall(types.RootObject, "next", []types.Value{types.NewInt(1), types.NewStr("a")}, types.SystemObject, types.SystemObject)
	tr.VerbReturn(types.RootObject, "next", types.NewInt(42))
	tr.Exception(types.RootObject, "next", types.E_DIV, "Division by zero")
	tr.Emit("tick", types.RootObject, nil, 2)

	out := buf.String()
	for _, want := range []string{
		`[TRACE] CALL #1:next args=[1, "a"] player=#0 caller=#0`,
		"[TRACE] RETURN #1:next => 42",
		`[TRACE] EXCEPTION #1:next E_DIV "Division by zero"`,
		"[TRACE] EMIT tick from=#1 args=[] handlers=2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Missing %q in output:\n%s", want, out)
		}
	}
}

func TestDisabledTracerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	tr := New(false, nil, &buf)
	tr.VerbCall(types.RootObject, "next", nil, types.SystemObject, types.SystemObject)
	tr.LambdaCall(nil, types.SystemObject)
	if buf.Len() != 0 {
		t.Errorf("Disabled tracer wrote %q", buf.String())
	}
}
