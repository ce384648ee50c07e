package builtins

import (
	"errors"

	"echo/db"
	"echo/types"
)

// builtinCreatePlayer registers a new player
// create_player(username) -> obj
func builtinCreatePlayer(ctx *types.TaskContext, args []types.Value, host PlayerHost) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	name, ok := args[0].(types.StrValue)
	if !ok {
		return types.Errf(types.E_TYPE, "create_player() requires a string, got %s", types.TypeName(args[0]))
	}
	if name.Value() == "" {
		return types.Errf(types.E_INVARG, "username must not be empty")
	}

	id, err := host.CreatePlayer(name.Value())
	if errors.Is(err, db.ErrNameTaken) {
		return types.Errf(types.E_INVARG, "username %q is already taken", name.Value())
	}
	if err != nil {
		return types.Errf(types.E_STORE, "create player: %v", err)
	}
	return types.Ok(types.NewObj(id))
}

// getPlayer loads a player record from an object argument
func getPlayer(store db.Store, v types.Value) (*db.Object, types.Result) {
	objVal, ok := v.(types.ObjValue)
	if !ok {
		return nil, types.Errf(types.E_TYPE, "expected a player object, got %s", types.TypeName(v))
	}
	obj, err := store.Get(objVal.ID())
	if err != nil {
		return nil, types.Errf(types.E_INVIND, "no such object %s", objVal.ID())
	}
	if !db.IsPlayer(obj) {
		return nil, types.Errf(types.E_INVARG, "%s is not a player", objVal.ID())
	}
	return obj, types.Ok(types.Null)
}

// builtinPlayerName returns a player's display name
// player_name(obj) -> str
func builtinPlayerName(ctx *types.TaskContext, args []types.Value, store db.Store) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	obj, res := getPlayer(store, args[0])
	if obj == nil {
		return res
	}
	if v, ok := obj.Property(db.PlayerNameProp); ok {
		return types.Ok(v)
	}
	return types.Ok(types.NewStr(obj.Name))
}

// builtinSetPlayerName changes a player's display name
// set_player_name(obj, name) -> str
func builtinSetPlayerName(ctx *types.TaskContext, args []types.Value, store db.Store) types.Result {
	if len(args) != 2 {
		return types.Err(types.E_ARGS)
	}
	name, ok := args[1].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	obj, res := getPlayer(store, args[0])
	if obj == nil {
		return res
	}
	if err := obj.SetProperty(db.PlayerNameProp, name); err != nil {
		return types.Errf(types.E_STORE, "%v", err)
	}
	if err := store.Put(obj); err != nil {
		return types.Errf(types.E_STORE, "%v", err)
	}
	return types.Ok(name)
}

// builtinSetUsername changes the name a player is registered under
// set_username(obj, username) -> str
func builtinSetUsername(ctx *types.TaskContext, args []types.Value, store db.Store) types.Result {
	if len(args) != 2 {
		return types.Err(types.E_ARGS)
	}
	name, ok := args[1].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	obj, res := getPlayer(store, args[0])
	if obj == nil {
		return res
	}

	err := db.RenamePlayer(store, obj.ID, name.Value())
	if errors.Is(err, db.ErrNameTaken) {
		return types.Errf(types.E_INVARG, "username %q is already taken", name.Value())
	}
	if err != nil {
		return types.Errf(types.E_INVARG, "%v", err)
	}
	return types.Ok(name)
}

// builtinSetPassword stores an argon2id hash of the password on the player
// set_password(obj, password) -> null
func builtinSetPassword(ctx *types.TaskContext, args []types.Value, store db.Store) types.Result {
	if len(args) != 2 {
		return types.Err(types.E_ARGS)
	}
	password, ok := args[1].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	obj, res := getPlayer(store, args[0])
	if obj == nil {
		return res
	}

	encoded, err := hashPassword(password.Value())
	if err != nil {
		return types.Errf(types.E_INVARG, "%v", err)
	}
	if err := obj.SetProperty(db.PasswordHashProp, types.NewStr(encoded)); err != nil {
		return types.Errf(types.E_STORE, "%v", err)
	}
	if err := store.Put(obj); err != nil {
		return types.Errf(types.E_STORE, "%v", err)
	}
	return types.Ok(types.Null)
}

// builtinCheckPassword verifies a password against the stored hash.
// A player without a password never matches.
// check_password(obj, password) -> bool
func builtinCheckPassword(ctx *types.TaskContext, args []types.Value, store db.Store) types.Result {
	if len(args) != 2 {
		return types.Err(types.E_ARGS)
	}
	password, ok := args[1].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	obj, res := getPlayer(store, args[0])
	if obj == nil {
		return res
	}

	stored, ok := obj.Property(db.PasswordHashProp)
	if !ok {
		return types.Ok(types.NewBool(false))
	}
	encoded, ok := stored.(types.StrValue)
	if !ok {
		return types.Ok(types.NewBool(false))
	}
	match, err := verifyPassword(encoded.Value(), password.Value())
	if err != nil {
		return types.Errf(types.E_INVARG, "stored password hash is invalid: %v", err)
	}
	return types.Ok(types.NewBool(match))
}
