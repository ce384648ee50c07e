package builtins

import (
	"sort"
	"sync"

	"echo/db"
	"echo/events"
	"echo/types"
)

// BuiltinFunc is a function type for builtin functions
// Takes a task context and list of arguments, returns a Result
type BuiltinFunc func(ctx *types.TaskContext, args []types.Value) types.Result

// PlayerHost creates players on behalf of the player builtins. The
// evaluator implements it so a new player also gets an environment.
type PlayerHost interface {
	CreatePlayer(username string) (types.ObjID, error)
}

// EventHost dispatches events on behalf of the emit builtin
type EventHost interface {
	EmitEvent(ctx *types.TaskContext, ev events.Event) (cancelled bool, res types.Result)
}

// Registry holds all registered builtin functions
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]BuiltinFunc
	ui    UICallback
}

// NewRegistry creates a registry holding the builtins that need no
// collaborators
func NewRegistry() *Registry {
	r := &Registry{
		funcs: make(map[string]BuiltinFunc),
	}

	// Type conversion
	r.Register("type", builtinType)
	r.Register("tostr", builtinTostr)
	r.Register("toint", builtinToint)
	r.Register("tofloat", builtinTofloat)

	// Collections
	r.Register("length", builtinLength)
	r.Register("keys", builtinKeys)
	r.Register("values", builtinValues)
	r.Register("has_key", builtinHasKey)

	// Strings
	r.Register("strsub", builtinStrsub)
	r.Register("index", builtinIndex)
	r.Register("upcase", builtinUpcase)
	r.Register("downcase", builtinDowncase)
	r.Register("explode", builtinExplode)
	r.Register("implode", builtinImplode)
	r.Register("trim", builtinTrim)

	// Math
	r.Register("abs", builtinAbs)
	r.Register("min", builtinMin)
	r.Register("max", builtinMax)
	r.Register("random", builtinRandom)
	r.Register("sqrt", builtinSqrt)
	r.Register("floor", builtinFloor)
	r.Register("ceil", builtinCeil)

	// JSON
	r.Register("generate_json", builtinGenerateJson)
	r.Register("parse_json", builtinParseJson)

	// Hashing
	r.Register("string_hash", builtinStringHash)
	r.Register("string_hmac", builtinStringHmac)

	// UI bridge; a no-op until a callback is set
	r.registerUIBuiltins()

	return r
}

// Register adds a builtin function to the registry
func (r *Registry) Register(name string, fn BuiltinFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Get retrieves a builtin function by name
// Returns (function, true) if found, (nil, false) if not found
func (r *Registry) Get(name string) (BuiltinFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has checks if a builtin function is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.funcs[name]
	return ok
}

// Names returns the registered builtin names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterObjectBuiltins registers builtins that read object records
func (r *Registry) RegisterObjectBuiltins(store db.Store) {
	r.Register("valid", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinValid(ctx, args, store)
	})
	r.Register("parent", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinParent(ctx, args, store)
	})
}

// RegisterPlayerBuiltins registers the player registry and password builtins
func (r *Registry) RegisterPlayerBuiltins(store db.Store, host PlayerHost) {
	r.Register("create_player", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinCreatePlayer(ctx, args, host)
	})
	r.Register("player_name", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinPlayerName(ctx, args, store)
	})
	r.Register("set_player_name", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinSetPlayerName(ctx, args, store)
	})
	r.Register("set_username", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinSetUsername(ctx, args, store)
	})
	r.Register("set_password", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinSetPassword(ctx, args, store)
	})
	r.Register("check_password", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinCheckPassword(ctx, args, store)
	})
}

// RegisterEventBuiltins registers emit
func (r *Registry) RegisterEventBuiltins(host EventHost) {
	r.Register("emit", func(ctx *types.TaskContext, args []types.Value) types.Result {
		return builtinEmit(ctx, args, host)
	})
}
