package eval

import (
	"fmt"

	"echo/db"
	"echo/types"
)

// CreatePlayer registers a new player and gives it a fresh environment with
// `player` bound to the new object. A taken username fails with an error
// wrapping db.ErrNameTaken.
func (e *Evaluator) CreatePlayer(username string) (types.ObjID, error) {
	obj, err := db.NewPlayer(e.store, username)
	if err != nil {
		return types.ObjNothing, err
	}
	e.ResetPlayer(obj.ID)
	return obj.ID, nil
}

// SwitchPlayer makes the named player the actor for Eval
func (e *Evaluator) SwitchPlayer(username string) error {
	id, ok, err := db.LookupPlayer(e.store, username)
	if err != nil {
		return fmt.Errorf("look up player %s: %w", username, err)
	}
	if !ok {
		return &Error{Code: types.E_INVARG, Message: fmt.Sprintf("no player named %q", username)}
	}
	if _, has := e.envs.Get(id); !has {
		e.ResetPlayer(id)
	}

	e.mu.Lock()
	e.current = id
	e.mu.Unlock()
	return nil
}

// CurrentPlayer returns the actor Eval runs as
func (e *Evaluator) CurrentPlayer() types.ObjID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// ResetPlayer discards an actor's variables, leaving only `player`
func (e *Evaluator) ResetPlayer(id types.ObjID) {
	env := e.envs.Reset(id)
	env.Set("player", types.NewObj(id))
}
