package store

import "todo-api/internal/domain/entity"

type TodoGateway interface {
	List() []entity.Todo
	Get(id string) (entity.Todo, bool)
	Save(todo entity.Todo)
	Update(id string, apply func(todo *entity.Todo)) (entity.Todo, bool)
	Delete(id string) bool
	Count() int
}
