package controller

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/internal/domain/validator"
	"todo-api/pkg/msg"
)

var routedMethods = []string{
	http.MethodConnect, http.MethodDelete, http.MethodGet, http.MethodHead, http.MethodOptions,
	http.MethodPatch, http.MethodPost, http.MethodPut, http.MethodTrace, echo.PROPFIND, echo.REPORT,
}

type TodoController struct {
	api     *echo.Group
	useCase todo.UseCase
}

func NewTodoController(api *echo.Group, useCase todo.UseCase) *TodoController {
	return &TodoController{api: api, useCase: useCase}
}

// InitTodoRoutes initializes todo routes. Every other method on the same paths answers 405.
func (controller *TodoController) InitTodoRoutes() {
	controller.api.GET("/todos", controller.FindAll)
	controller.api.POST("/todos", controller.Create)
	controller.api.GET("/todos/:id", controller.FindByID)
	controller.api.PATCH("/todos/:id", controller.UpdateByID)
	controller.api.DELETE("/todos/:id", controller.DeleteByID)

	controller.api.Match(methodsExcept(http.MethodGet, http.MethodPost), "/todos", controller.MethodNotAllowed)
	controller.api.Match(methodsExcept(http.MethodGet, http.MethodPatch, http.MethodDelete), "/todos/:id", controller.MethodNotAllowed)
}

// FindAll godoc
// @Summary List todos
// @Description Retrieve every todo ordered by creation time
// @Tags todos
// @Produce json
// @Success 200 {array} entity.Todo "Todos sorted by createdAt"
// @Router /todos [get]
func (controller *TodoController) FindAll(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.FindAll())
}

// FindByID godoc
// @Summary Get todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo id"
// @Success 200 {object} entity.Todo "Todo"
// @Failure 404 {object} model.ErrorResponse "Todo not found"
// @Router /todos/{id} [get]
func (controller *TodoController) FindByID(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return badRequest(c, msg.GetMessage("todo.error.invalid-id"))
	}

	found, err := controller.useCase.FindByID(id)
	if errors.Is(err, todo.ErrTodoNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, found)
}

// Create godoc
// @Summary Create a todo
// @Description Create an incomplete todo with a generated id and creation timestamp
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body model.CreateTodoDTO true "Todo creation data"
// @Success 200 {object} entity.Todo "Created todo"
// @Failure 400 {object} model.ErrorResponse "Invalid content type or body"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /todos [post]
func (controller *TodoController) Create(c echo.Context) error {
	if !hasJSONContentType(c) {
		return badRequest(c, msg.GetMessage("todo.error.content-type"))
	}

	body, err := validator.ParseJSONBody(c.Request().Body)
	if errors.Is(err, validator.ErrInvalidJSON) {
		return badRequest(c, msg.GetMessage("todo.error.invalid-json"))
	}
	if err != nil {
		return err
	}

	dto, err := validator.DecodeCreateTodo(body)
	if err != nil {
		return badRequest(c, msg.GetMessage("todo.error.invalid-create"))
	}

	created := controller.useCase.Create(c.Request().Context(), dto)
	return c.JSON(http.StatusOK, created)
}

// UpdateByID godoc
// @Summary Update a todo
// @Description Overwrite the fields present in the body and stamp updatedAt; absent fields are kept
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo id"
// @Param todo body model.UpdateTodoDTO true "Fields to update"
// @Success 200 {object} entity.Todo "Updated todo"
// @Failure 400 {object} model.ErrorResponse "Invalid content type or body"
// @Failure 404 {object} model.ErrorResponse "Todo not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /todos/{id} [patch]
func (controller *TodoController) UpdateByID(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return badRequest(c, msg.GetMessage("todo.error.invalid-id"))
	}

	if !hasJSONContentType(c) {
		return badRequest(c, msg.GetMessage("todo.error.content-type"))
	}

	body, err := validator.ParseJSONBody(c.Request().Body)
	if errors.Is(err, validator.ErrInvalidJSON) {
		return badRequest(c, msg.GetMessage("todo.error.invalid-json"))
	}
	if err != nil {
		return err
	}

	dto, err := validator.DecodeUpdateTodo(body)
	if err != nil {
		return badRequest(c, msg.GetMessage("todo.error.invalid-update"))
	}

	updated, err := controller.useCase.UpdateByID(c.Request().Context(), id, dto)
	if errors.Is(err, todo.ErrTodoNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteByID godoc
// @Summary Delete a todo
// @Tags todos
// @Param id path string true "Todo id"
// @Success 204 "Todo deleted"
// @Failure 404 {object} model.ErrorResponse "Todo not found"
// @Router /todos/{id} [delete]
func (controller *TodoController) DeleteByID(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return badRequest(c, msg.GetMessage("todo.error.invalid-id"))
	}

	err = controller.useCase.DeleteByID(c.Request().Context(), id)
	if errors.Is(err, todo.ErrTodoNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (controller *TodoController) MethodNotAllowed(echo.Context) error {
	return echo.ErrMethodNotAllowed
}

// todoID returns the URL-decoded id path segment. echo leaves the segment escaped only
// when the request path carried a raw form.
func todoID(c echo.Context) (string, error) {
	id := c.Param("id")
	if c.Request().URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

// hasJSONContentType accepts a missing Content-Type header, like a bare curl -d.
func hasJSONContentType(c echo.Context) bool {
	values, present := c.Request().Header[echo.HeaderContentType]
	if !present {
		return true
	}
	return strings.Contains(strings.Join(values, ","), echo.MIMEApplicationJSON)
}

func methodsExcept(handled ...string) []string {
	methods := make([]string, 0, len(routedMethods))
	for _, method := range routedMethods {
		if !slices.Contains(handled, method) {
			methods = append(methods, method)
		}
	}
	return methods
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: message})
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, model.ErrorResponse{Error: msg.GetMessage("app.error.not-found")})
}
