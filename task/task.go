package task

import (
	"sync"
	"time"

	"echo/types"
)

// TaskState represents the current state of a task
type TaskState int

const (
	TaskCreated TaskState = iota
	TaskRunning
	TaskCompleted
	TaskAborted
)

func (s TaskState) String() string {
	switch s {
	case TaskCreated:
		return "created"
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// FrameKind distinguishes what pushed an activation frame
type FrameKind int

const (
	FrameVerb FrameKind = iota
	FrameLambda
	FrameHandler
)

// ActivationFrame represents a single invocation on the call stack
type ActivationFrame struct {
	Kind    FrameKind
	This    types.ObjID   // Object the verb or handler runs on
	Player  types.ObjID   // Actor whose environment is in use
	Caller  types.ObjID   // Actor or object that made the call
	Verb    string        // Verb, event, or "<lambda>"
	VerbLoc types.ObjID   // Object where the verb is defined
	Args    []types.Value // Arguments passed
}

// ToList converts an activation frame to a list value
// Format: [this, verb_name, verb_loc, player, caller]
func (a *ActivationFrame) ToList() types.Value {
	return types.NewList([]types.Value{
		types.NewObj(a.This),
		types.NewStr(a.Verb),
		types.NewObj(a.VerbLoc),
		types.NewObj(a.Player),
		types.NewObj(a.Caller),
	})
}

// Task is one top-level evaluation and its call stack
type Task struct {
	ID        int64
	Player    types.ObjID
	State     TaskState
	StartTime time.Time
	CallStack []ActivationFrame
	Context   *types.TaskContext
	Result    types.Result // Set when the task finishes

	mu sync.RWMutex
}

// NewTask creates a task with a fresh context bound to player
func NewTask(id int64, player types.ObjID, maxDepth int, tickLimit int64) *Task {
	ctx := types.NewTaskContext()
	ctx.Player = player
	ctx.ThisObj = player
	if maxDepth > 0 {
		ctx.MaxDepth = maxDepth
	}
	ctx.SetTickLimit(tickLimit)

	t := &Task{
		ID:        id,
		Player:    player,
		State:     TaskCreated,
		StartTime: time.Now(),
		CallStack: make([]ActivationFrame, 0),
		Context:   ctx,
	}
	// Set ctx.Task to this task so the evaluator and builtins can reach it
	ctx.Task = t
	return t
}

// FromContext returns the task a context belongs to, or nil
func FromContext(ctx *types.TaskContext) *Task {
	if ctx == nil {
		return nil
	}
	t, _ := ctx.Task.(*Task)
	return t
}

// GetState returns the current state (thread-safe)
func (t *Task) GetState() TaskState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.State
}

// SetState sets the state (thread-safe)
func (t *Task) SetState(state TaskState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.State = state
}

// PushFrame pushes an activation frame onto the call stack
func (t *Task) PushFrame(frame ActivationFrame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.CallStack = append(t.CallStack, frame)
}

// PopFrame pops an activation frame from the call stack
func (t *Task) PopFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.CallStack) > 0 {
		t.CallStack = t.CallStack[:len(t.CallStack)-1]
	}
}

// GetCallStack returns a copy of the call stack (thread-safe)
func (t *Task) GetCallStack() []ActivationFrame {
	t.mu.RLock()
	defer t.mu.RUnlock()
	stack := make([]ActivationFrame, len(t.CallStack))
	copy(stack, t.CallStack)
	return stack
}

// GetTopFrame returns the top frame (current invocation)
func (t *Task) GetTopFrame() *ActivationFrame {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.CallStack) == 0 {
		return nil
	}
	frame := t.CallStack[len(t.CallStack)-1]
	return &frame
}

// Finish records the outcome and moves the task to a terminal state
func (t *Task) Finish(result types.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Result = result
	if result.IsError() {
		t.State = TaskAborted
	} else {
		t.State = TaskCompleted
	}
}
