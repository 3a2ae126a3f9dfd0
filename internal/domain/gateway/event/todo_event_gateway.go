package event

import (
	"context"

	"todo-api/internal/domain/model"
)

type TodoEventGateway interface {
	Publish(ctx context.Context, event model.TodoEvent) error
	Health() model.ComponentHealthStatus
}
