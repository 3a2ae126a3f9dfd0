package schedule

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

type TodoScheduler struct {
	cron    *cron.Cron
	useCase todo.UseCase
}

func NewTodoScheduler(useCase todo.UseCase) *TodoScheduler {
	return &TodoScheduler{cron: cron.New(), useCase: useCase}
}

// InitTodoScheduleTasks registers the stats job on spec and starts the scheduler
func (scheduler *TodoScheduler) InitTodoScheduleTasks(spec string) error {
	if _, err := scheduler.cron.AddFunc(spec, scheduler.LogTodoStats); err != nil {
		return fmt.Errorf("%s: %w", msg.GetMessage("todo.cron.invalid", spec, err), err)
	}

	scheduler.cron.Start()
	log.Info(msg.GetMessage("todo.cron.start"), zap.String("cron", spec))
	return nil
}

// LogTodoStats logs how many todos are stored and how many of them are completed
func (scheduler *TodoScheduler) LogTodoStats() {
	stats := scheduler.useCase.Stats()

	log.Info(msg.GetMessage("todo.cron.stats", stats.Total, stats.Completed),
		zap.Int("total", stats.Total),
		zap.Int("completed", stats.Completed),
	)
}

// Stop stops the scheduler; the returned context is done when running jobs finish
func (scheduler *TodoScheduler) Stop() context.Context {
	return scheduler.cron.Stop()
}
