package todo

import (
	"context"
	"errors"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

var ErrTodoNotFound = errors.New("todo not found")

type UseCase interface {
	FindAll() []entity.Todo
	FindByID(id string) (entity.Todo, error)
	Create(ctx context.Context, dto model.CreateTodoDTO) entity.Todo
	UpdateByID(ctx context.Context, id string, dto model.UpdateTodoDTO) (entity.Todo, error)
	DeleteByID(ctx context.Context, id string) error
	Stats() model.TodoStats
}
