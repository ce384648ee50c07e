package builtins

import "echo/types"

// UI action kinds
const (
	UIClear     = "clear"
	UIAddButton = "add_button"
	UIAddText   = "add_text"
	UIAddDiv    = "add_div"
	UIUpdate    = "update"
)

// UIAction is one request from a program to the player's interface
type UIAction struct {
	Kind   string
	Player types.ObjID
	Args   []types.Value
}

// Value renders the action as a map, the form front ends receive
func (a UIAction) Value() types.Value {
	return types.NewMap(map[string]types.Value{
		"kind":   types.NewStr(a.Kind),
		"player": types.NewObj(a.Player),
		"args":   types.NewList(a.Args),
	})
}

// UICallback receives UI actions
type UICallback func(UIAction)

// SetUICallback installs the UI callback. nil discards actions.
func (r *Registry) SetUICallback(cb UICallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ui = cb
}

func (r *Registry) uiCallback() UICallback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ui
}

func (r *Registry) registerUIBuiltins() {
	for name, kind := range map[string]string{
		"ui_clear":      UIClear,
		"ui_add_button": UIAddButton,
		"ui_add_text":   UIAddText,
		"ui_add_div":    UIAddDiv,
		"ui_update":     UIUpdate,
	} {
		kind := kind
		r.Register(name, func(ctx *types.TaskContext, args []types.Value) types.Result {
			if cb := r.uiCallback(); cb != nil {
				cb(UIAction{
					Kind:   kind,
					Player: ctx.Player,
					Args:   append([]types.Value(nil), args...),
				})
			}
			return types.Ok(types.Null)
		})
	}
}
