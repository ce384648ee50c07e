package builtins

import (
	"testing"

	"echo/db"
	"echo/events"
	"echo/types"
)

// storeHost creates players directly in a store
type storeHost struct {
	store db.Store
}

func (h storeHost) CreatePlayer(username string) (types.ObjID, error) {
	obj, err := db.NewPlayer(h.store, username)
	if err != nil {
		return types.ObjNothing, err
	}
	return obj.ID, nil
}

func newPlayerRegistry(t *testing.T) (*Registry, db.Store) {
	t.Helper()
	store := db.NewMemoryStore()
	if err := db.Bootstrap(store); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	r := NewRegistry()
	r.RegisterObjectBuiltins(store)
	r.RegisterPlayerBuiltins(store, storeHost{store})
	return r, store
}

func TestPlayerBuiltins(t *testing.T) {
	r, store := newPlayerRegistry(t)

	res := call(t, r, "create_player", types.NewStr("alice"))
	if res.IsError() {
		t.Fatalf("create_player failed: %s", res.Message())
	}
	alice := res.Val.(types.ObjValue)

	if res := call(t, r, "create_player", types.NewStr("alice")); res.Error != types.E_INVARG {
		t.Errorf("Expected E_INVARG for duplicate username, got %s", res.Error)
	}

	if res := call(t, r, "player_name", alice); !res.Val.Equal(types.NewStr("alice")) {
		t.Errorf("Expected display name alice, got %s", res.Val)
	}
	call(t, r, "set_player_name", alice, types.NewStr("Alice the Brave"))
	if res := call(t, r, "player_name", alice); !res.Val.Equal(types.NewStr("Alice the Brave")) {
		t.Errorf("Expected new display name, got %s", res.Val)
	}

	if res := call(t, r, "set_username", alice, types.NewStr("al")); res.IsError() {
		t.Fatalf("set_username failed: %s", res.Message())
	}
	if id, ok, _ := db.LookupPlayer(store, "al"); !ok || id != alice.ID() {
		t.Errorf("Expected registry to map al to %s", alice.ID())
	}
	if _, ok, _ := db.LookupPlayer(store, "alice"); ok {
		t.Error("Expected old username to be unregistered")
	}

	if res := call(t, r, "check_password", alice, types.NewStr("pw")); !res.Val.Equal(types.NewBool(false)) {
		t.Errorf("Expected no match before a password is set, got %s", res.Val)
	}
	call(t, r, "set_password", alice, types.NewStr("pw"))
	if res := call(t, r, "check_password", alice, types.NewStr("pw")); !res.Val.Equal(types.NewBool(true)) {
		t.Errorf("Expected password to match, got %s", res.Val)
	}
	if res := call(t, r, "check_password", alice, types.NewStr("nope")); !res.Val.Equal(types.NewBool(false)) {
		t.Errorf("Expected wrong password to fail, got %s", res.Val)
	}

	if res := call(t, r, "player_name", types.NewObj(types.RootObject)); res.Error != types.E_INVARG {
		t.Errorf("Expected E_INVARG for non-player, got %s", res.Error)
	}
}

func TestObjectBuiltins(t *testing.T) {
	r, _ := newPlayerRegistry(t)

	if res := call(t, r, "valid", types.NewObj(types.RootObject)); !res.Val.Equal(types.NewBool(true)) {
		t.Errorf("Expected #1 to be valid, got %s", res.Val)
	}
	if res := call(t, r, "valid", types.NewObj(types.NewObjID())); !res.Val.Equal(types.NewBool(false)) {
		t.Errorf("Expected fresh id to be invalid, got %s", res.Val)
	}
	if res := call(t, r, "parent", types.NewObj(types.SystemObject)); !types.IsNull(res.Val) {
		t.Errorf("Expected null parent for #0, got %s", res.Val)
	}

	player := call(t, r, "create_player", types.NewStr("bob")).Val
	if res := call(t, r, "parent", player); !res.Val.Equal(types.NewObj(types.RootObject)) {
		t.Errorf("Expected player parent #1, got %s", res.Val)
	}
	if res := call(t, r, "parent", types.NewObj(types.NewObjID())); res.Error != types.E_INVIND {
		t.Errorf("Expected E_INVIND, got %s", res.Error)
	}
}

type recordingHost struct {
	got    []events.Event
	cancel bool
}

func (h *recordingHost) EmitEvent(ctx *types.TaskContext, ev events.Event) (bool, types.Result) {
	h.got = append(h.got, ev)
	return h.cancel, types.Ok(types.Null)
}

func TestEmitBuiltin(t *testing.T) {
	host := &recordingHost{}
	r := NewRegistry()
	r.RegisterEventBuiltins(host)

	fn, _ := r.Get("emit")
	ctx := types.NewTaskContext()
	ctx.Player = types.SystemObject
	ctx.ThisObj = types.RootObject

	res := fn(ctx, []types.Value{types.NewStr("ping"), types.NewInt(1)})
	if res.IsError() || !res.Val.Equal(types.NewBool(true)) {
		t.Fatalf("Expected true, got %+v", res)
	}
	if len(host.got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(host.got))
	}
	ev := host.got[0]
	if ev.Name != "ping" || ev.Emitter != types.RootObject || !ev.Bubbles || !ev.Cancelable || len(ev.Args) != 1 {
		t.Errorf("Unexpected event %+v", ev)
	}

	host.cancel = true
	if res := fn(ctx, []types.Value{types.NewStr("ping")}); !res.Val.Equal(types.NewBool(false)) {
		t.Errorf("Expected false when cancelled, got %s", res.Val)
	}
	if res := fn(ctx, nil); res.Error != types.E_ARGS {
		t.Errorf("Expected E_ARGS, got %s", res.Error)
	}
}
