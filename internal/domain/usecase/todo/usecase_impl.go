package todo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/event"
	"todo-api/internal/domain/gateway/store"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

// DefaultPublishTimeout bounds how long a mutation waits on the event gateway.
const DefaultPublishTimeout = 2 * time.Second

type todoUseCase struct {
	gateway store.TodoGateway
	events  event.TodoEventGateway
	now     func() time.Time
	newID   func() string
	timeout time.Duration
}

// Option customizes a use case built by NewTodoUseCase.
type Option func(*todoUseCase)

// WithClock replaces time.Now as the source of CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(uc *todoUseCase) { uc.now = now }
}

// WithPublishTimeout replaces DefaultPublishTimeout.
func WithPublishTimeout(timeout time.Duration) Option {
	return func(uc *todoUseCase) { uc.timeout = timeout }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(uc *todoUseCase) { uc.newID = newID }
}

func NewTodoUseCase(gateway store.TodoGateway, events event.TodoEventGateway, options ...Option) UseCase {
	uc := &todoUseCase{
		gateway: gateway,
		events:  events,
		now:     time.Now,
		newID:   uuid.NewString,
		timeout: DefaultPublishTimeout,
	}
	for _, option := range options {
		option(uc)
	}
	if uc.events == nil {
		uc.events = event.NewNoopTodoEventGateway()
	}
	return uc
}

func (uc *todoUseCase) FindAll() []entity.Todo {
	return uc.gateway.List()
}

func (uc *todoUseCase) FindByID(id string) (entity.Todo, error) {
	todo, ok := uc.gateway.Get(id)
	if !ok {
		return entity.Todo{}, ErrTodoNotFound
	}
	return todo, nil
}

func (uc *todoUseCase) Create(ctx context.Context, dto model.CreateTodoDTO) entity.Todo {
	todo := entity.Todo{
		ID:          uc.newID(),
		Title:       dto.Title,
		Description: dto.Description,
		Completed:   false,
		CreatedAt:   uc.timestamp(""),
	}
	uc.gateway.Save(todo)

	uc.publish(ctx, model.TodoCreated, todo.ID, &todo, todo.CreatedAt)
	return todo
}

// UpdateByID overwrites the fields present in dto. Absent fields keep their value, so a
// description can be replaced but not cleared.
func (uc *todoUseCase) UpdateByID(ctx context.Context, id string, dto model.UpdateTodoDTO) (entity.Todo, error) {
	updated, ok := uc.gateway.Update(id, func(existing *entity.Todo) {
		if dto.Title != nil {
			existing.Title = *dto.Title
		}
		if dto.Description != nil {
			description := *dto.Description
			existing.Description = &description
		}
		if dto.Completed != nil {
			existing.Completed = *dto.Completed
		}
		existing.UpdatedAt = uc.timestamp(max(existing.CreatedAt, existing.UpdatedAt))
	})
	if !ok {
		return entity.Todo{}, ErrTodoNotFound
	}

	uc.publish(ctx, model.TodoUpdated, updated.ID, &updated, updated.UpdatedAt)
	return updated, nil
}

func (uc *todoUseCase) DeleteByID(ctx context.Context, id string) error {
	if !uc.gateway.Delete(id) {
		return ErrTodoNotFound
	}

	uc.publish(ctx, model.TodoDeleted, id, nil, uc.timestamp(""))
	return nil
}

func (uc *todoUseCase) Stats() model.TodoStats {
	todos := uc.gateway.List()

	stats := model.TodoStats{Total: len(todos)}
	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
		}
	}
	return stats
}

// timestamp formats the current time, moving it one millisecond past previous when the
// clock has not advanced beyond it.
func (uc *todoUseCase) timestamp(previous string) string {
	now := uc.now().UTC()
	if previous != "" && now.Format(entity.TimestampLayout) <= previous {
		if last, err := time.Parse(entity.TimestampLayout, previous); err == nil {
			now = last.Add(time.Millisecond)
		}
	}
	return now.Format(entity.TimestampLayout)
}

func (uc *todoUseCase) publish(ctx context.Context, eventType model.TodoEventType, id string, todo *entity.Todo, occurredAt string) {
	var payload *entity.Todo
	if todo != nil {
		clone := todo.Clone()
		payload = &clone
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	err := uc.events.Publish(ctx, model.TodoEvent{
		Type:       eventType,
		TodoID:     id,
		Todo:       payload,
		OccurredAt: occurredAt,
	})
	if err != nil {
		log.Warn(msg.GetMessage("todo.event.publish-failed", string(eventType), id, err),
			zap.String("event", string(eventType)),
			zap.String("todo_id", id),
			zap.Error(err),
		)
	}
}
