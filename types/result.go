package types

import "fmt"

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal    ControlFlow = iota // Normal execution
	FlowReturn                       // Return statement
	FlowBreak                        // Break statement
	FlowContinue                     // Continue statement
	FlowException                    // Error being raised
)

// String names the flow for diagnostics
func (f ControlFlow) String() string {
	switch f {
	case FlowNormal:
		return "normal"
	case FlowReturn:
		return "return"
	case FlowBreak:
		return "break"
	case FlowContinue:
		return "continue"
	case FlowException:
		return "exception"
	default:
		return "unknown"
	}
}

// Result represents the outcome of evaluating an expression or statement.
// This unifies normal values, control flow (return/break/continue), and errors.
type Result struct {
	Val       Value       // The value (if Flow == FlowNormal or FlowReturn)
	Flow      ControlFlow // Control flow state
	Error     ErrorCode   // Only set when Flow == FlowException
	Msg       string      // Detail message for an exception (empty = code default)
	Label     string      // Loop label for break/continue (empty = innermost loop)
	CallStack interface{} // []task.ActivationFrame - captured where the exception was raised
}

// Ok creates a Result for normal execution with a value
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// Return creates a Result for a return statement
func Return(v Value) Result {
	return Result{Val: v, Flow: FlowReturn}
}

// Err creates a Result for an error with the code's default message
func Err(e ErrorCode) Result {
	return Result{Flow: FlowException, Error: e}
}

// Errf creates a Result for an error with a formatted message
func Errf(e ErrorCode, format string, args ...interface{}) Result {
	return Result{Flow: FlowException, Error: e, Msg: fmt.Sprintf(format, args...)}
}

// Break creates a Result for a break statement
func Break(label string) Result {
	return Result{Flow: FlowBreak, Label: label}
}

// Continue creates a Result for a continue statement
func Continue(label string) Result {
	return Result{Flow: FlowContinue, Label: label}
}

// IsNormal returns true if this is normal execution
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsError returns true if this is an exception
func (r Result) IsError() bool {
	return r.Flow == FlowException
}

// IsReturn returns true if this is a return statement
func (r Result) IsReturn() bool {
	return r.Flow == FlowReturn
}

// IsBreak returns true if this is a break statement
func (r Result) IsBreak() bool {
	return r.Flow == FlowBreak
}

// IsContinue returns true if this is a continue statement
func (r Result) IsContinue() bool {
	return r.Flow == FlowContinue
}

// Message returns the exception message, falling back to the code default
func (r Result) Message() string {
	if r.Msg != "" {
		return r.Msg
	}
	return r.Error.Message()
}
