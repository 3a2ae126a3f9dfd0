package model

import "todo-api/internal/domain/entity"

type TodoEventType string

const (
	TodoCreated TodoEventType = "todo.created"
	TodoUpdated TodoEventType = "todo.updated"
	TodoDeleted TodoEventType = "todo.deleted"
)

// TodoEvent describes a change applied to the store. Todo is nil for deletions.
type TodoEvent struct {
	Type       TodoEventType `json:"type"`
	TodoID     string        `json:"todoId"`
	Todo       *entity.Todo  `json:"todo,omitempty"`
	OccurredAt string        `json:"occurredAt"`
}
