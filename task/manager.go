package task

import (
	"sync"
	"sync/atomic"

	"echo/types"
)

// Manager tracks the tasks currently running under one evaluator
type Manager struct {
	tasks      map[int64]*Task
	nextTaskID int64
	mu         sync.RWMutex
}

// NewManager creates an empty task manager
func NewManager() *Manager {
	return &Manager{
		tasks: make(map[int64]*Task),
	}
}

// CreateTask creates a new task and adds it to the manager
func (m *Manager) CreateTask(player types.ObjID, maxDepth int, tickLimit int64) *Task {
	id := atomic.AddInt64(&m.nextTaskID, 1)
	t := NewTask(id, player, maxDepth, tickLimit)

	m.mu.Lock()
	m.tasks[id] = t
	m.mu.Unlock()

	return t
}

// GetTask retrieves a task by ID
func (m *Manager) GetTask(id int64) *Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tasks[id]
}

// RemoveTask removes a task from the manager
func (m *Manager) RemoveTask(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
}

// Running returns the tasks currently evaluating on behalf of player
func (m *Manager) Running(player types.ObjID) []*Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tasks []*Task
	for _, t := range m.tasks {
		if t.Player == player && t.GetState() == TaskRunning {
			tasks = append(tasks, t)
		}
	}
	return tasks
}
