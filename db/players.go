package db

import (
	"errors"
	"fmt"

	"echo/types"
)

// ErrNameTaken is returned when a username is already registered
var ErrNameTaken = errors.New("username already registered")

// Property names used by the player registry
const (
	PlayerRegistryProp = "player_registry" // on #0: map of username -> player
	PlayerNameProp     = "name"            // display name
	PlayerUsernameProp = "username"
	PasswordHashProp   = "password_hash"
)

// LookupPlayer finds a player by username in the system object's registry
func LookupPlayer(s Store, username string) (types.ObjID, bool, error) {
	sys, err := s.Get(types.SystemObject)
	if err != nil {
		return types.ObjNothing, false, err
	}
	registry := playerRegistry(sys)
	v, ok := registry.Get(username)
	if !ok {
		return types.ObjNothing, false, nil
	}
	obj, ok := v.(types.ObjValue)
	if !ok {
		return types.ObjNothing, false, fmt.Errorf("registry entry %q is not an object", username)
	}
	return obj.ID(), true, nil
}

// NewPlayer creates a player record with the given username and registers it.
// The display name starts out equal to the username.
func NewPlayer(s Store, username string) (*Object, error) {
	if username == "" {
		return nil, fmt.Errorf("empty username")
	}
	if _, taken, err := LookupPlayer(s, username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: %s", ErrNameTaken, username)
	}

	player := NewObject(types.NewObjID(), types.RootObject)
	player.Name = username
	player.Properties[PlayerNameProp] = PropValue{Kind: PropStr, Str: username}
	player.Properties[PlayerUsernameProp] = PropValue{Kind: PropStr, Str: username}
	if err := s.Put(player); err != nil {
		return nil, err
	}
	if err := updateRegistry(s, func(r types.MapValue) types.MapValue {
		return r.Set(username, types.NewObj(player.ID))
	}); err != nil {
		return nil, err
	}
	return player, nil
}

// RenamePlayer changes a player's username, keeping the registry in step
func RenamePlayer(s Store, player types.ObjID, username string) error {
	if username == "" {
		return fmt.Errorf("empty username")
	}
	obj, err := s.Get(player)
	if err != nil {
		return err
	}
	if existing, taken, err := LookupPlayer(s, username); err != nil {
		return err
	} else if taken && existing != player {
		return fmt.Errorf("%w: %s", ErrNameTaken, username)
	}

	old, _ := obj.Property(PlayerUsernameProp)
	obj.Properties[PlayerUsernameProp] = PropValue{Kind: PropStr, Str: username}
	if err := s.Put(obj); err != nil {
		return err
	}
	return updateRegistry(s, func(r types.MapValue) types.MapValue {
		if oldName, ok := old.(types.StrValue); ok {
			r = r.Delete(oldName.Value())
		}
		return r.Set(username, types.NewObj(player))
	})
}

// IsPlayer reports whether obj carries a username
func IsPlayer(obj *Object) bool {
	_, ok := obj.Properties[PlayerUsernameProp]
	return ok
}

func playerRegistry(sys *Object) types.MapValue {
	if v, ok := sys.Property(PlayerRegistryProp); ok {
		if m, ok := v.(types.MapValue); ok {
			return m
		}
	}
	return types.NewEmptyMap()
}

// updateRegistry is a get-mutate-put on the system object
func updateRegistry(s Store, mutate func(types.MapValue) types.MapValue) error {
	sys, err := s.Get(types.SystemObject)
	if err != nil {
		return err
	}
	if err := sys.SetProperty(PlayerRegistryProp, mutate(playerRegistry(sys))); err != nil {
		return err
	}
	return s.Put(sys)
}
