package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"echo/types"
)

// Tracer provides execution tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	globalTracer = New(enabled, filters, writer)
}

// New creates a tracer; a nil writer means stderr
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// matchesFilter checks if a verb or event name matches any of the filter patterns
func (t *Tracer) matchesFilter(name string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func formatArgs(args []types.Value) string {
	argStrs := make([]string, len(args))
	for i, arg := range args {
		argStrs[i] = arg.String()
	}
	return strings.Join(argStrs, ", ")
}

// VerbCall logs a verb call
func (t *Tracer) VerbCall(objID types.ObjID, verbName string, args []types.Value, player types.ObjID, caller types.ObjID) {
	if !t.enabled || !t.matchesFilter(verbName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] CALL %s:%s args=[%s] player=%s caller=%s\n",
		objID, verbName, formatArgs(args), player, caller)
}

// VerbReturn logs a verb return value
func (t *Tracer) VerbReturn(objID types.ObjID, verbName string, result types.Value) {
	if !t.enabled || !t.matchesFilter(verbName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	resultStr := "null"
	if result != nil {
		resultStr = result.String()
	}

	fmt.Fprintf(t.writer, "[TRACE] RETURN %s:%s => %s\n", objID, verbName, resultStr)
}

// Exception logs an exception leaving a verb
func (t *Tracer) Exception(objID types.ObjID, verbName string, err types.ErrorCode, msg string) {
	if !t.enabled || !t.matchesFilter(verbName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] EXCEPTION %s:%s %s %q\n", objID, verbName, err, msg)
}

// LambdaCall logs a closure invocation
func (t *Tracer) LambdaCall(args []types.Value, player types.ObjID) {
	if !t.enabled || !t.matchesFilter("<lambda>") {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] LAMBDA args=[%s] player=%s\n", formatArgs(args), player)
}

// Emit logs an event dispatch
func (t *Tracer) Emit(event string, emitter types.ObjID, args []types.Value, handlers int) {
	if !t.enabled || !t.matchesFilter(event) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] EMIT %s from=%s args=[%s] handlers=%d\n",
		event, emitter, formatArgs(args), handlers)
}

// Global convenience functions

// VerbCall logs a verb call using the global tracer
func VerbCall(objID types.ObjID, verbName string, args []types.Value, player types.ObjID, caller types.ObjID) {
	if globalTracer != nil {
		globalTracer.VerbCall(objID, verbName, args, player, caller)
	}
}

// VerbReturn logs a verb return using the global tracer
func VerbReturn(objID types.ObjID, verbName string, result types.Value) {
	if globalTracer != nil {
		globalTracer.VerbReturn(objID, verbName, result)
	}
}

// Exception logs an exception using the global tracer
func Exception(objID types.ObjID, verbName string, err types.ErrorCode, msg string) {
	if globalTracer != nil {
		globalTracer.Exception(objID, verbName, err, msg)
	}
}

// LambdaCall logs a closure invocation using the global tracer
func LambdaCall(args []types.Value, player types.ObjID) {
	if globalTracer != nil {
		globalTracer.LambdaCall(args, player)
	}
}

// Emit logs an event dispatch using the global tracer
func Emit(event string, emitter types.ObjID, args []types.Value, handlers int) {
	if globalTracer != nil {
		globalTracer.Emit(event, emitter, args, handlers)
	}
}
