package schedule

import (
	"context"
	"testing"
	"time"

	"todo-api/internal/domain/gateway/store"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"
)

type countingUseCase struct {
	todo.UseCase
	calls chan struct{}
}

func (c *countingUseCase) Stats() model.TodoStats {
	c.calls <- struct{}{}
	return model.TodoStats{Total: 1}
}

func TestInitTodoScheduleTasks_InvalidSpec(t *testing.T) {
	scheduler := NewTodoScheduler(todo.NewTodoUseCase(store.NewMemoryTodoGateway(), nil))

	if err := scheduler.InitTodoScheduleTasks("not a cron"); err == nil {
		t.Fatal("expected an error for an invalid cron expression")
	}
}

func TestInitTodoScheduleTasks_RunsJob(t *testing.T) {
	useCase := &countingUseCase{calls: make(chan struct{}, 10)}
	scheduler := NewTodoScheduler(useCase)

	if err := scheduler.InitTodoScheduleTasks("@every 1s"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer scheduler.Stop()

	select {
	case <-useCase.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("expected the stats job to run")
	}
}

func TestLogTodoStats(t *testing.T) {
	todos := todo.NewTodoUseCase(store.NewMemoryTodoGateway(), nil)
	todos.Create(context.Background(), model.CreateTodoDTO{Title: "a"})

	NewTodoScheduler(todos).LogTodoStats()
}
