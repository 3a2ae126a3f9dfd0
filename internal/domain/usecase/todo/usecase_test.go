package todo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/store"
	"todo-api/internal/domain/model"
)

type recordingEvents struct {
	events []model.TodoEvent
	err    error
}

func (r *recordingEvents) Publish(_ context.Context, event model.TodoEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEvents) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

type fixture struct {
	useCase UseCase
	store   *store.MemoryTodoGateway
	events  *recordingEvents
	clock   time.Time
}

func newFixture() *fixture {
	f := &fixture{
		store:  store.NewMemoryTodoGateway(),
		events: &recordingEvents{},
		clock:  time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
	}
	sequence := 0
	f.useCase = NewTodoUseCase(f.store, f.events,
		WithClock(func() time.Time { return f.clock }),
		WithIDGenerator(func() string {
			sequence++
			return fmt.Sprintf("id-%d", sequence)
		}),
	)
	return f
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func TestCreate(t *testing.T) {
	f := newFixture()

	todo := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "Buy milk", Description: strPtr("2 litres")})

	if todo.ID != "id-1" {
		t.Errorf("expected id-1, got %s", todo.ID)
	}
	if todo.Completed {
		t.Error("expected new todo to be incomplete")
	}
	if todo.CreatedAt != "2026-10-18T09:30:00.000Z" {
		t.Errorf("unexpected createdAt %s", todo.CreatedAt)
	}
	if todo.UpdatedAt != "" {
		t.Errorf("expected no updatedAt, got %s", todo.UpdatedAt)
	}

	stored, err := f.useCase.FindByID("id-1")
	if err != nil {
		t.Fatalf("expected stored todo, got %v", err)
	}
	if stored.Title != "Buy milk" || *stored.Description != "2 litres" {
		t.Errorf("unexpected stored todo %+v", stored)
	}

	if len(f.events.events) != 1 || f.events.events[0].Type != model.TodoCreated {
		t.Fatalf("expected one todo.created event, got %+v", f.events.events)
	}
	if f.events.events[0].Todo == nil || f.events.events[0].Todo.ID != "id-1" {
		t.Errorf("expected event payload with the todo, got %+v", f.events.events[0].Todo)
	}
}

func TestCreate_UsesRandomUUIDByDefault(t *testing.T) {
	useCase := NewTodoUseCase(store.NewMemoryTodoGateway(), nil)

	first := useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a"})
	second := useCase.Create(context.Background(), model.CreateTodoDTO{Title: "b"})

	if len(first.ID) != 36 {
		t.Errorf("expected a UUID, got %q", first.ID)
	}
	if first.ID == second.ID {
		t.Error("expected distinct ids")
	}
}

func TestFindByID_NotFound(t *testing.T) {
	f := newFixture()

	if _, err := f.useCase.FindByID("missing"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestFindAll_OrderedByCreatedAt(t *testing.T) {
	f := newFixture()

	for i := 0; i < 3; i++ {
		f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: fmt.Sprintf("todo %d", i)})
		f.clock = f.clock.Add(time.Second)
	}

	todos := f.useCase.FindAll()
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	for i := 1; i < len(todos); i++ {
		if todos[i-1].CreatedAt > todos[i].CreatedAt {
			t.Errorf("todos out of order: %s before %s", todos[i-1].CreatedAt, todos[i].CreatedAt)
		}
	}
	if todos[0].Title != "todo 0" {
		t.Errorf("expected oldest first, got %s", todos[0].Title)
	}
}

func TestUpdateByID_PartialMerge(t *testing.T) {
	f := newFixture()
	created := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "Buy milk", Description: strPtr("2 litres")})
	f.clock = f.clock.Add(time.Minute)

	updated, err := f.useCase.UpdateByID(context.Background(), created.ID, model.UpdateTodoDTO{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Completed {
		t.Error("expected completed to be true")
	}
	if updated.Title != "Buy milk" || *updated.Description != "2 litres" {
		t.Errorf("expected untouched fields to be kept, got %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("createdAt changed from %s to %s", created.CreatedAt, updated.CreatedAt)
	}
	if updated.UpdatedAt != "2026-10-18T09:31:00.000Z" {
		t.Errorf("unexpected updatedAt %s", updated.UpdatedAt)
	}

	stored, _ := f.useCase.FindByID(created.ID)
	if !stored.Completed {
		t.Error("expected update to be saved")
	}

	last := f.events.events[len(f.events.events)-1]
	if last.Type != model.TodoUpdated || last.OccurredAt != updated.UpdatedAt {
		t.Errorf("unexpected event %+v", last)
	}
}

func TestUpdateByID_AllFields(t *testing.T) {
	f := newFixture()
	created := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "old"})

	updated, err := f.useCase.UpdateByID(context.Background(), created.ID, model.UpdateTodoDTO{
		Title:       strPtr("new"),
		Description: strPtr("added"),
		Completed:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "new" || updated.Description == nil || *updated.Description != "added" || !updated.Completed {
		t.Errorf("unexpected update result %+v", updated)
	}
}

func TestUpdateByID_UpdatedAtAlwaysAdvances(t *testing.T) {
	f := newFixture()
	created := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a"})

	first, _ := f.useCase.UpdateByID(context.Background(), created.ID, model.UpdateTodoDTO{})
	second, _ := f.useCase.UpdateByID(context.Background(), created.ID, model.UpdateTodoDTO{})

	if first.UpdatedAt <= created.CreatedAt {
		t.Errorf("expected updatedAt %s after createdAt %s", first.UpdatedAt, created.CreatedAt)
	}
	if second.UpdatedAt <= first.UpdatedAt {
		t.Errorf("expected second updatedAt %s after %s", second.UpdatedAt, first.UpdatedAt)
	}
	if second.UpdatedAt != "2026-10-18T09:30:00.002Z" {
		t.Errorf("unexpected updatedAt %s", second.UpdatedAt)
	}
}

func TestUpdateByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.UpdateByID(context.Background(), "missing", model.UpdateTodoDTO{Title: strPtr("x")})
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
	if f.store.Count() != 0 {
		t.Error("expected nothing to be saved")
	}
}

func TestDeleteByID(t *testing.T) {
	f := newFixture()
	created := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a"})

	if err := f.useCase.DeleteByID(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.useCase.FindByID(created.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected deleted todo to be gone, got %v", err)
	}
	if err := f.useCase.DeleteByID(context.Background(), created.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected second delete to fail with ErrTodoNotFound, got %v", err)
	}

	last := f.events.events[len(f.events.events)-1]
	if last.Type != model.TodoDeleted || last.TodoID != created.ID || last.Todo != nil {
		t.Errorf("unexpected event %+v", last)
	}
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture()
	f.events.err = errors.New("redis unavailable")

	created := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a"})
	if _, err := f.useCase.FindByID(created.ID); err != nil {
		t.Errorf("expected todo to be stored despite publish failure, got %v", err)
	}
}

func TestStats(t *testing.T) {
	f := newFixture()
	first := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a"})
	f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "b"})
	f.useCase.UpdateByID(context.Background(), first.ID, model.UpdateTodoDTO{Completed: boolPtr(true)})

	stats := f.useCase.Stats()
	if stats.Total != 2 || stats.Completed != 1 {
		t.Errorf("expected 2 total and 1 completed, got %+v", stats)
	}
}

func TestStoredRecordIsNotAliased(t *testing.T) {
	f := newFixture()
	description := "original"
	created := f.useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a", Description: &description})

	description = "mutated"

	stored, _ := f.useCase.FindByID(created.ID)
	if *stored.Description != "original" {
		t.Errorf("expected stored description to be isolated, got %q", *stored.Description)
	}
}

type blockingEvents struct{}

func (blockingEvents) Publish(ctx context.Context, _ model.TodoEvent) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingEvents) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusDown}
}

func TestPublishIsBoundedByTimeout(t *testing.T) {
	useCase := NewTodoUseCase(store.NewMemoryTodoGateway(), blockingEvents{},
		WithPublishTimeout(20*time.Millisecond))

	done := make(chan entity.Todo)
	go func() {
		done <- useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a"})
	}()

	select {
	case created := <-done:
		if _, err := useCase.FindByID(created.ID); err != nil {
			t.Errorf("expected todo to be stored, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("create blocked on an unavailable event gateway")
	}
}

func TestUpdateByID_ConcurrentPatchesKeepEveryField(t *testing.T) {
	useCase := NewTodoUseCase(store.NewMemoryTodoGateway(), nil)

	for i := 0; i < 50; i++ {
		created := useCase.Create(context.Background(), model.CreateTodoDTO{Title: "old"})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			useCase.UpdateByID(context.Background(), created.ID, model.UpdateTodoDTO{Title: strPtr("new")})
		}()
		go func() {
			defer wg.Done()
			useCase.UpdateByID(context.Background(), created.ID, model.UpdateTodoDTO{Completed: boolPtr(true)})
		}()
		wg.Wait()

		final, err := useCase.FindByID(created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if final.Title != "new" || !final.Completed {
			t.Fatalf("iteration %d: lost update, got title=%q completed=%v", i, final.Title, final.Completed)
		}
	}
}

func TestUpdateByID_ConcurrentDeleteWins(t *testing.T) {
	useCase := NewTodoUseCase(store.NewMemoryTodoGateway(), nil)

	for i := 0; i < 50; i++ {
		created := useCase.Create(context.Background(), model.CreateTodoDTO{Title: "a"})

		var wg sync.WaitGroup
		var deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			useCase.UpdateByID(context.Background(), created.ID, model.UpdateTodoDTO{Title: strPtr("b")})
		}()
		go func() {
			defer wg.Done()
			deleteErr = useCase.DeleteByID(context.Background(), created.ID)
		}()
		wg.Wait()

		if deleteErr != nil {
			t.Fatalf("unexpected delete error: %v", deleteErr)
		}
		if _, err := useCase.FindByID(created.ID); !errors.Is(err, ErrTodoNotFound) {
			t.Fatalf("iteration %d: deleted todo is present again", i)
		}
	}
}
