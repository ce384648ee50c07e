// Package events keeps the handlers objects declare for named events and
// dispatches emitted events to them synchronously.
package events

import (
	"sort"
	"sync"

	"echo/ast"
	"echo/trace"
	"echo/types"
)

// Handler is an event handler registered by an object definition
type Handler struct {
	Object   types.ObjID
	Event    string
	Params   []ast.Param
	Body     []ast.Stmt
	Priority int

	seq int // registration order, breaks priority ties
}

// Event is one emitted event
type Event struct {
	Name       string
	Args       []types.Value
	Emitter    types.ObjID
	Bubbles    bool // also notify the emitter's ancestors
	Cancelable bool // a handler returning false stops dispatch
}

// Payload is the value bound to `event` inside a handler
func (e Event) Payload() types.Value {
	return types.NewMap(map[string]types.Value{
		"name":    types.NewStr(e.Name),
		"args":    types.NewList(e.Args),
		"emitter": types.NewObj(e.Emitter),
	})
}

// Runner executes handler bodies. The evaluator implements it; Emit may
// therefore re-enter the evaluator before it returns.
type Runner interface {
	RunHandler(h *Handler, ev Event) types.Result
	Ancestors(obj types.ObjID) []types.ObjID
}

// Registry maps objects and event names to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[types.ObjID]map[string][]*Handler
	seq      int
}

// NewRegistry creates an empty handler registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[types.ObjID]map[string][]*Handler)}
}

// RegisterHandler adds a handler for event on obj
func (r *Registry) RegisterHandler(obj types.ObjID, event string, params []ast.Param, body []ast.Stmt, priority int) *Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	h := &Handler{Object: obj, Event: event, Params: params, Body: body, Priority: priority, seq: r.seq}
	byEvent, ok := r.handlers[obj]
	if !ok {
		byEvent = make(map[string][]*Handler)
		r.handlers[obj] = byEvent
	}
	list := append(byEvent[event], h)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority > list[j].Priority
		}
		return list[i].seq < list[j].seq
	})
	byEvent[event] = list
	return h
}

// Handlers returns obj's handlers for event, highest priority first
func (r *Registry) Handlers(obj types.ObjID, event string) []*Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.handlers[obj][event]
	out := make([]*Handler, len(list))
	copy(out, list)
	return out
}

// Emit runs the handlers for ev: the emitter's own, then each ancestor's if
// the event bubbles, then the system object's. A handler error stops
// dispatch and is returned. cancelled reports whether a handler returned
// false on a cancelable event.
func (r *Registry) Emit(run Runner, ev Event) (cancelled bool, res types.Result) {
	targets := []types.ObjID{ev.Emitter}
	if ev.Bubbles {
		targets = append(targets, run.Ancestors(ev.Emitter)...)
	}
	if ev.Emitter != types.SystemObject {
		targets = append(targets, types.SystemObject)
	}

	var queue []*Handler
	seen := make(map[types.ObjID]bool, len(targets))
	for _, obj := range targets {
		if seen[obj] {
			continue
		}
		seen[obj] = true
		queue = append(queue, r.Handlers(obj, ev.Name)...)
	}
	trace.Emit(ev.Name, ev.Emitter, ev.Args, len(queue))

	for _, h := range queue {
		res := run.RunHandler(h, ev)
		if res.IsError() {
			return false, res
		}
		if ev.Cancelable {
			if b, ok := res.Val.(types.BoolValue); ok && !b.Val {
				return true, types.Ok(types.Null)
			}
		}
	}
	return false, types.Ok(types.Null)
}
