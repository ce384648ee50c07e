package eval

import (
	"errors"
	"fmt"

	"echo/db"
	"echo/task"
	"echo/types"
)

// Error is an evaluation failure reported by Eval
type Error struct {
	Code      types.ErrorCode
	Message   string
	Traceback []string // innermost frame first; see task.FormatTraceback
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the error code carried by err, or E_NONE if err is not
// an evaluation error
func CodeOf(err error) types.ErrorCode {
	var evalErr *Error
	if errors.As(err, &evalErr) {
		return evalErr.Code
	}
	return types.E_NONE
}

// newError converts an exception result into an *Error
func newError(res types.Result, player types.ObjID) *Error {
	stack, _ := res.CallStack.([]task.ActivationFrame)
	return &Error{
		Code:      res.Error,
		Message:   res.Message(),
		Traceback: task.FormatTraceback(stack, res.Message(), player),
	}
}

// flowError turns a break, continue or return with nothing to consume it
// into E_FLOW
func flowError(res types.Result) types.Result {
	switch res.Flow {
	case types.FlowBreak:
		return types.Errf(types.E_FLOW, "break outside loop")
	case types.FlowContinue:
		return types.Errf(types.E_FLOW, "continue outside loop")
	case types.FlowReturn:
		return types.Errf(types.E_FLOW, "return outside function")
	default:
		return res
	}
}

// storeError maps a store failure for id to a result
func storeError(err error, id types.ObjID) types.Result {
	if errors.Is(err, db.ErrNotFound) {
		return types.Errf(types.E_INVIND, "no such object %s", id)
	}
	return types.Errf(types.E_STORE, "load %s: %v", id, err)
}

// withCallStack records the task's call stack on an exception that does not
// carry one yet
func withCallStack(res types.Result, ctx *types.TaskContext) types.Result {
	if !res.IsError() || res.CallStack != nil {
		return res
	}
	if t := task.FromContext(ctx); t != nil {
		res.CallStack = t.GetCallStack()
	}
	return res
}
