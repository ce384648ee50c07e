package eval

import (
	"sync"

	"echo/ast"
	"echo/types"
)

// Environment holds one actor's variables and the names currently bound const.
// It is not safe for concurrent mutation; an actor runs one evaluation at a time.
type Environment struct {
	vars   map[string]types.Value
	consts map[string]bool
}

// NewEnvironment creates an empty environment
func NewEnvironment() *Environment {
	return &Environment{
		vars:   make(map[string]types.Value),
		consts: make(map[string]bool),
	}
}

// newEnvironmentFrom creates an environment holding a copy of vars
func newEnvironmentFrom(vars map[string]types.Value) *Environment {
	env := NewEnvironment()
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

// Get looks up a variable by name
// Returns (value, true) if found, (nil, false) if not found
func (e *Environment) Get(name string) (types.Value, bool) {
	val, ok := e.vars[name]
	return val, ok
}

// Set assigns a variable without touching its const mark
func (e *Environment) Set(name string, value types.Value) {
	e.vars[name] = value
}

// IsConst reports whether name is currently bound const
func (e *Environment) IsConst(name string) bool {
	return e.consts[name]
}

// Bind assigns name according to the binding kind: let clears any const
// mark, const sets it, and plain assignment fails on a const name.
func (e *Environment) Bind(name string, value types.Value, kind ast.BindKind) types.Result {
	switch kind {
	case ast.BindLet:
		delete(e.consts, name)
	case ast.BindConst:
		e.consts[name] = true
	default:
		if e.consts[name] {
			return types.Errf(types.E_CONST, "cannot reassign const %s", name)
		}
	}
	e.vars[name] = value
	return types.Ok(value)
}

// Snapshot copies the variable map. Values are immutable, so a shallow copy
// isolates the snapshot from later bindings.
func (e *Environment) Snapshot() map[string]types.Value {
	vars := make(map[string]types.Value, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return vars
}

// Names returns the bound variable names
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	return names
}

// Environments maps actors to their current environment. Lookups and swaps
// are safe across goroutines evaluating different actors.
type Environments struct {
	mu   sync.RWMutex
	envs map[types.ObjID]*Environment
}

// NewEnvironments creates an empty table
func NewEnvironments() *Environments {
	return &Environments{envs: make(map[types.ObjID]*Environment)}
}

// Get returns the actor's current environment
func (t *Environments) Get(actor types.ObjID) (*Environment, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	env, ok := t.envs[actor]
	return env, ok
}

// Ensure returns the actor's environment, creating an empty one if needed
func (t *Environments) Ensure(actor types.ObjID) *Environment {
	if env, ok := t.Get(actor); ok {
		return env
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	env, ok := t.envs[actor]
	if !ok {
		env = NewEnvironment()
		t.envs[actor] = env
	}
	return env
}

// Reset replaces the actor's environment with a fresh one
func (t *Environments) Reset(actor types.ObjID) *Environment {
	env := NewEnvironment()
	t.mu.Lock()
	t.envs[actor] = env
	t.mu.Unlock()
	return env
}

// Swap installs env as the actor's environment and returns a function that
// restores the previous one. Callers defer the restore so it runs on every
// exit path.
func (t *Environments) Swap(actor types.ObjID, env *Environment) (restore func()) {
	t.mu.Lock()
	prev, had := t.envs[actor]
	t.envs[actor] = env
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if had {
			t.envs[actor] = prev
		} else {
			delete(t.envs, actor)
		}
	}
}
