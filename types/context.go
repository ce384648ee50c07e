package types

// DefaultMaxDepth bounds nested verb, lambda and handler invocations
const DefaultMaxDepth = 256

// TaskContext holds the execution context for one evaluation:
// - Tick budget (0 = unlimited)
// - Current player (the actor whose environment is in use)
// - Current object and verb (for 'this' and tracebacks)
// - Call depth, checked against MaxDepth
type TaskContext struct {
	TicksRemaining int64  // Remaining ticks; ignored when Unlimited
	Unlimited      bool   // No tick budget
	Player         ObjID  // Current actor
	ThisObj        ObjID  // Current 'this'
	Verb           string // Current verb name
	Depth          int    // Nested invocation depth
	MaxDepth       int    // Depth at which calls fail with E_MAXREC

	// Task holds the call stack (*task.Task); typed loosely to avoid an
	// import cycle with the task package.
	Task interface{}
}

// NewTaskContext creates a new task context with default values
func NewTaskContext() *TaskContext {
	return &TaskContext{
		Unlimited: true,
		Player:    ObjNothing,
		ThisObj:   ObjNothing,
		MaxDepth:  DefaultMaxDepth,
	}
}

// SetTickLimit sets the tick budget; zero or less means unlimited
func (ctx *TaskContext) SetTickLimit(ticks int64) {
	ctx.Unlimited = ticks <= 0
	ctx.TicksRemaining = ticks
}

// ConsumeTick decrements the tick count and returns true if ticks remain
func (ctx *TaskContext) ConsumeTick() bool {
	if ctx.Unlimited {
		return true
	}
	ctx.TicksRemaining--
	return ctx.TicksRemaining >= 0
}

// Enter increments the call depth; it returns false when MaxDepth would be
// exceeded, in which case the depth is left unchanged.
func (ctx *TaskContext) Enter() bool {
	if ctx.MaxDepth > 0 && ctx.Depth >= ctx.MaxDepth {
		return false
	}
	ctx.Depth++
	return true
}

// Leave undoes a successful Enter
func (ctx *TaskContext) Leave() {
	if ctx.Depth > 0 {
		ctx.Depth--
	}
}
