package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

// SetupErrorHandling installs the panic recovery middleware and the HTTP error handler
// that turns every error reaching echo into a {"error": message} response. Details of
// unexpected failures are logged, never sent to the client.
func SetupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = HandleError

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisablePrintStack: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error(msg.GetMessage("app.unhandled", c.Request().Method, c.Request().URL.Path, err),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			return recoveredPanic{err}
		},
	}))
}

// recoveredPanic marks an error already logged with its stack by the recover middleware.
type recoveredPanic struct {
	error
}

func (r recoveredPanic) Unwrap() error {
	return r.error
}

// HandleError writes the JSON error response for err unless a response was already sent.
func HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := resolveError(err)
	var recovered recoveredPanic
	if status >= http.StatusInternalServerError && !errors.As(err, &recovered) {
		log.Error(msg.GetMessage("app.unhandled", c.Request().Method, c.Request().URL.Path, err),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	if sendErr := c.JSON(status, model.ErrorResponse{Error: message}); sendErr != nil {
		log.Error(sendErr.Error(), zap.Error(sendErr))
	}
}

func resolveError(err error) (int, string) {
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		return http.StatusInternalServerError, msg.GetMessage("app.error.internal")
	}

	switch httpErr.Code {
	case http.StatusNotFound:
		return http.StatusNotFound, msg.GetMessage("app.error.not-found")
	case http.StatusMethodNotAllowed:
		return http.StatusMethodNotAllowed, msg.GetMessage("app.error.method-not-allowed")
	case http.StatusRequestEntityTooLarge:
		return http.StatusRequestEntityTooLarge, msg.GetMessage("app.error.entity-too-large")
	}

	if httpErr.Code >= http.StatusBadRequest && httpErr.Code < http.StatusInternalServerError {
		if message, ok := httpErr.Message.(string); ok {
			return httpErr.Code, message
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}
	return http.StatusInternalServerError, msg.GetMessage("app.error.internal")
}
