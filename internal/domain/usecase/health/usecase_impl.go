package health

import (
	"strconv"

	"todo-api/internal/domain/gateway/event"
	"todo-api/internal/domain/gateway/store"
	"todo-api/internal/domain/model"
)

type healthUseCase struct {
	todoGateway  store.TodoGateway
	eventGateway event.TodoEventGateway
}

func NewHealthUseCase(todoGateway store.TodoGateway, eventGateway event.TodoEventGateway) UseCase {
	return &healthUseCase{
		todoGateway:  todoGateway,
		eventGateway: eventGateway,
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	storeHealth := model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"type":  "memory",
			"count": strconv.Itoa(useCase.todoGateway.Count()),
		},
	}
	eventHealth := useCase.eventGateway.Health()

	// a disabled publisher does not degrade the service
	overallStatus := model.StatusUp
	if eventHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status: overallStatus,
		Store:  storeHealth,
		Events: eventHealth,
	}
}
