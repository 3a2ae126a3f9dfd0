package store

import (
	"cmp"
	"slices"
	"sync"

	"todo-api/internal/domain/entity"
)

// MemoryTodoGateway keeps todos in a process-local map. Records are copied on the way in
// and out so callers never alias stored values.
type MemoryTodoGateway struct {
	todos map[string]entity.Todo
	mutex sync.RWMutex
}

var _ TodoGateway = (*MemoryTodoGateway)(nil)

func NewMemoryTodoGateway() *MemoryTodoGateway {
	return &MemoryTodoGateway{
		todos: make(map[string]entity.Todo),
	}
}

// List returns every todo ordered by CreatedAt, then ID.
func (gateway *MemoryTodoGateway) List() []entity.Todo {
	gateway.mutex.RLock()
	todos := make([]entity.Todo, 0, len(gateway.todos))
	for _, todo := range gateway.todos {
		todos = append(todos, todo.Clone())
	}
	gateway.mutex.RUnlock()

	slices.SortFunc(todos, func(a, b entity.Todo) int {
		return cmp.Or(cmp.Compare(a.CreatedAt, b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return todos
}

func (gateway *MemoryTodoGateway) Get(id string) (entity.Todo, bool) {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	todo, ok := gateway.todos[id]
	if !ok {
		return entity.Todo{}, false
	}
	return todo.Clone(), true
}

func (gateway *MemoryTodoGateway) Save(todo entity.Todo) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.todos[todo.ID] = todo.Clone()
}

// Update runs apply on a copy of the stored todo and writes the result back, all under the
// write lock. It reports false without calling apply when id is unknown.
func (gateway *MemoryTodoGateway) Update(id string, apply func(todo *entity.Todo)) (entity.Todo, bool) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()

	stored, ok := gateway.todos[id]
	if !ok {
		return entity.Todo{}, false
	}

	todo := stored.Clone()
	apply(&todo)
	todo.ID = id
	gateway.todos[id] = todo.Clone()
	return todo, true
}

func (gateway *MemoryTodoGateway) Delete(id string) bool {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()

	if _, ok := gateway.todos[id]; !ok {
		return false
	}
	delete(gateway.todos, id)
	return true
}

func (gateway *MemoryTodoGateway) Count() int {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()
	return len(gateway.todos)
}
