package types

import "testing"

func TestResultConstructors(t *testing.T) {
	t.Run("Ok", func(t *testing.T) {
		r := Ok(NewInt(42))
		if !r.IsNormal() {
			t.Error("Ok() should create normal result")
		}
		if !r.Val.Equal(NewInt(42)) {
			t.Errorf("Expected value 42, got %v", r.Val)
		}
	})

	t.Run("Err", func(t *testing.T) {
		r := Err(E_TYPE)
		if !r.IsError() {
			t.Error("Err() should create error result")
		}
		if r.Error != E_TYPE {
			t.Errorf("Expected E_TYPE, got %v", r.Error)
		}
		if r.Message() != "Type mismatch" {
			t.Errorf("Expected default message, got %q", r.Message())
		}
	})

	t.Run("Errf", func(t *testing.T) {
		r := Errf(E_VARNF, "undefined variable: %s", "x")
		if r.Error != E_VARNF {
			t.Errorf("Expected E_VARNF, got %v", r.Error)
		}
		if r.Message() != "undefined variable: x" {
			t.Errorf("Expected formatted message, got %q", r.Message())
		}
	})

	t.Run("Return", func(t *testing.T) {
		r := Return(NewInt(42))
		if !r.IsReturn() {
			t.Error("Return() should create return result")
		}
	})

	t.Run("Break", func(t *testing.T) {
		r := Break("outer")
		if !r.IsBreak() || r.Label != "outer" {
			t.Errorf("Expected break outer, got %+v", r)
		}
	})

	t.Run("Continue", func(t *testing.T) {
		r := Continue("")
		if !r.IsContinue() {
			t.Error("Continue() should create continue result")
		}
	})
}

func TestErrorFromString(t *testing.T) {
	for code := E_NONE; code <= E_STORE; code++ {
		got, ok := ErrorFromString(code.String())
		if !ok || got != code {
			t.Errorf("ErrorFromString(%q) = %v, %v", code.String(), got, ok)
		}
	}
	if _, ok := ErrorFromString("E_BOGUS"); ok {
		t.Error("Expected E_BOGUS to be unknown")
	}
}

func TestErrorMap(t *testing.T) {
	m := ErrorMap(E_DIV, "")
	kind, _ := m.Get("kind")
	msg, _ := m.Get("message")
	if !kind.Equal(NewStr("E_DIV")) {
		t.Errorf("Expected kind E_DIV, got %v", kind)
	}
	if !msg.Equal(NewStr("Division by zero")) {
		t.Errorf("Expected default message, got %v", msg)
	}
}
