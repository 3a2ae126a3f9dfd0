package event

import (
	"context"

	"todo-api/internal/domain/model"
)

// NoopTodoEventGateway drops every event. It is used when event publishing is disabled.
type NoopTodoEventGateway struct{}

var _ TodoEventGateway = NoopTodoEventGateway{}

func NewNoopTodoEventGateway() NoopTodoEventGateway {
	return NoopTodoEventGateway{}
}

func (NoopTodoEventGateway) Publish(context.Context, model.TodoEvent) error {
	return nil
}

func (NoopTodoEventGateway) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status: model.StatusDisabled,
		Details: map[string]string{
			"message": "event publishing disabled",
		},
	}
}
