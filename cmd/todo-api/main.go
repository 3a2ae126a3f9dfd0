package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"todo-api/configs"
	"todo-api/internal/application/schedule"
	"todo-api/internal/application/server"
	"todo-api/internal/domain/gateway/event"
	"todo-api/internal/domain/gateway/store"
	"todo-api/internal/domain/usecase/health"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
	"todo-api/pkg/resource"
)

// @title Todo API
// @version 1.0
// @description In-memory todo list REST API.
// @BasePath /
func main() {
	defer log.Sync()

	appName := configs.Env.ApplicationName
	log.Info(msg.GetMessage("app.start", appName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init gateways
	todoGateway := store.NewMemoryTodoGateway()
	eventGateway, closeEvents := newEventGateway()
	defer closeEvents()

	// Init UseCase
	todoUseCase := todo.NewTodoUseCase(todoGateway, eventGateway,
		todo.WithPublishTimeout(resource.GetDurationOrDefault("app.events.publish-timeout", todo.DefaultPublishTimeout)))
	healthUseCase := health.NewHealthUseCase(todoGateway, eventGateway)

	// Init Schedule
	todoScheduler := schedule.NewTodoScheduler(todoUseCase)
	if err := todoScheduler.InitTodoScheduleTasks(resource.GetString("app.todo.stats.cron")); err != nil {
		log.Fatal(err.Error(), zap.Error(err))
	}
	defer todoScheduler.Stop()

	// Init Routes
	config := server.ConfigFromProperties()
	e := server.NewEcho(config, todoUseCase, healthUseCase)
	httpServer := server.NewHTTPServer(config, e)

	log.Info(msg.GetMessage("app.started", appName, config.Port), zap.Int("port", config.Port))
	if err := server.Run(ctx, httpServer, config.ShutdownTimeout); err != nil {
		log.Error(msg.GetMessage("app.server-error", err), zap.Error(err))
	}

	log.Info(msg.GetMessage("app.stopped", appName))
}

// newEventGateway returns the redis publisher when app.events.enabled is set, otherwise a no-op
func newEventGateway() (event.TodoEventGateway, func()) {
	if !resource.GetBool("app.events.enabled") {
		return event.NewNoopTodoEventGateway(), func() {}
	}

	client, err := redis.NewClient(redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")))
	if err != nil {
		log.Fatal(err.Error(), zap.Error(err))
	}

	publisher := redis.NewPublisher(client.GetClient(),
		redis.NewPubSubConfig().WithChannelNamespace(resource.GetString("app.events.namespace")))
	gateway := event.NewRedisTodoEventGateway(publisher, resource.GetString("app.events.channel"))
	log.Info(msg.GetMessage("todo.event.enabled", gateway.Channel()))

	return gateway, func() {
		if err := client.Close(); err != nil {
			log.Error(err.Error(), zap.Error(err))
		}
	}
}
