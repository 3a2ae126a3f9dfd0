package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"todo-api/docs"
	"todo-api/internal/application/controller"
	"todo-api/internal/application/middleware"
	"todo-api/internal/domain/usecase/health"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/resource"
)

type Config struct {
	Port              int
	ContextPath       string
	BodyLimit         string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// ConfigFromProperties reads the app.server.* properties.
func ConfigFromProperties() Config {
	port := resource.GetInt("app.server.port")
	if port <= 0 {
		port = 3000
	}

	return Config{
		Port:              port,
		ContextPath:       resource.GetString("app.server.context-path"),
		BodyLimit:         resource.GetStringOrDefault("app.server.body-limit", "1M"),
		ReadHeaderTimeout: resource.GetDurationOrDefault("app.server.read-header-timeout", 10*time.Second),
		ReadTimeout:       resource.GetDurationOrDefault("app.server.read-timeout", 30*time.Second),
		WriteTimeout:      resource.GetDurationOrDefault("app.server.write-timeout", 30*time.Second),
		IdleTimeout:       resource.GetDurationOrDefault("app.server.idle-timeout", 120*time.Second),
		ShutdownTimeout:   resource.GetDurationOrDefault("app.server.shutdown-timeout", 10*time.Second),
	}
}

// NewEcho builds the echo instance with middlewares and every route registered.
func NewEcho(config Config, todoUseCase todo.UseCase, healthUseCase health.UseCase) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.SetupRequestLogger(e)
	middleware.SetupErrorHandling(e)
	if config.BodyLimit != "" {
		e.Use(echomw.BodyLimit(config.BodyLimit))
	}

	api := e.Group(config.ContextPath)

	controller.NewTodoController(api, todoUseCase).InitTodoRoutes()
	controller.NewHealthController(api, healthUseCase).InitHealthRoutes()

	docs.SwaggerInfo.BasePath = config.ContextPath
	if docs.SwaggerInfo.BasePath == "" {
		docs.SwaggerInfo.BasePath = "/"
	}
	api.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func NewHTTPServer(config Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.Itoa(config.Port),
		Handler:           handler,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
