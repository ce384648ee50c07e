package db

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"echo/types"
)

// ErrNotFound is returned (wrapped) by Get for unknown ids
var ErrNotFound = errors.New("object not found")

// Store is the object store the evaluator reads and writes records through.
// Get returns a copy; changes are only visible after Put. There is no
// transaction spanning a Get and the following Put.
type Store interface {
	Get(id types.ObjID) (*Object, error)
	Put(obj *Object) error
}

// MemoryStore is an in-memory object database
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[types.ObjID]*Object
}

// NewMemoryStore creates a new empty object store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[types.ObjID]*Object),
	}
}

// Get retrieves a copy of an object by ID
func (s *MemoryStore) Get(id types.ObjID) (*Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return obj.Clone(), nil
}

// Put inserts or replaces an object by ID
func (s *MemoryStore) Put(obj *Object) error {
	if obj == nil || obj.ID == types.ObjNothing {
		return fmt.Errorf("cannot store object without an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[obj.ID] = obj.Clone()
	return nil
}

// All returns copies of every stored object ordered by ID
func (s *MemoryStore) All() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Object, 0, len(s.objects))
	for _, obj := range s.objects {
		result = append(result, obj.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Valid checks if an object exists
func Valid(s Store, id types.ObjID) bool {
	_, err := s.Get(id)
	return err == nil
}

// Bootstrap creates the system and root objects if they are missing
func Bootstrap(s Store) error {
	for _, seed := range []struct {
		id   types.ObjID
		name string
	}{
		{types.SystemObject, "System"},
		{types.RootObject, "Root"},
	} {
		_, err := s.Get(seed.id)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		obj := NewObject(seed.id, types.ObjNothing)
		obj.Name = seed.name
		if err := s.Put(obj); err != nil {
			return fmt.Errorf("bootstrap %s: %w", seed.id, err)
		}
	}
	return nil
}

// FindVerb looks up a verb on an object. With inherited set it follows the
// parent chain; otherwise only the object's own record is consulted.
// Returns the verb and the object it's defined on.
func FindVerb(s Store, objID types.ObjID, verbName string, inherited bool) (*Verb, types.ObjID, error) {
	var found *Verb
	where, err := walk(s, objID, inherited, func(obj *Object) bool {
		found = obj.Verbs[verbName]
		return found != nil
	})
	if err != nil {
		return nil, types.ObjNothing, err
	}
	return found, where, nil
}

// FindProperty looks up a property the same way FindVerb looks up verbs
func FindProperty(s Store, objID types.ObjID, name string, inherited bool) (types.Value, types.ObjID, error) {
	var found types.Value
	where, err := walk(s, objID, inherited, func(obj *Object) bool {
		v, ok := obj.Property(name)
		found = v
		return ok
	})
	if err != nil {
		return nil, types.ObjNothing, err
	}
	return found, where, nil
}

// walk visits objID and, if inherited, its ancestors until match reports
// true. It returns ObjNothing if nothing matched, or an error if objID
// itself is missing.
func walk(s Store, objID types.ObjID, inherited bool, match func(*Object) bool) (types.ObjID, error) {
	// Track visited objects to prevent infinite loops
	visited := make(map[types.ObjID]bool)
	current := objID
	for current != types.ObjNothing && !visited[current] {
		visited[current] = true
		obj, err := s.Get(current)
		if err != nil {
			if current == objID {
				return types.ObjNothing, err
			}
			break
		}
		if match(obj) {
			return current, nil
		}
		if !inherited {
			break
		}
		current = obj.Parent
	}
	return types.ObjNothing, nil
}

// Ancestors returns the parent chain of objID, nearest first
func Ancestors(s Store, objID types.ObjID) []types.ObjID {
	var chain []types.ObjID
	visited := map[types.ObjID]bool{objID: true}
	obj, err := s.Get(objID)
	for err == nil && obj.Parent != types.ObjNothing && !visited[obj.Parent] {
		visited[obj.Parent] = true
		chain = append(chain, obj.Parent)
		obj, err = s.Get(obj.Parent)
	}
	return chain
}
