package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo-api/internal/domain/model"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrBodyRead    = errors.New("failed to read body")
)

const createTodoSchema = `{
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"}
	}
}`

const updateTodoSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"description": {"type": "string"},
		"completed": {"type": "boolean"}
	}
}`

var (
	createTodo = mustCompile("create-todo.json", createTodoSchema)
	updateTodo = mustCompile("update-todo.json", updateTodoSchema)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("invalid schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// ValidationError lists every reason a decoded body does not match the expected shape.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid body: " + strings.Join(e.Reasons, "; ")
}

// ParseJSONBody reads r until EOF and parses the accumulated bytes as JSON.
func ParseJSONBody(r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBodyRead, err)
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return value, nil
}

// DecodeCreateTodo checks that value is an object with a string title and an optional
// string description, and converts it to a CreateTodoDTO.
func DecodeCreateTodo(value interface{}) (model.CreateTodoDTO, error) {
	if err := validate(createTodo, value); err != nil {
		return model.CreateTodoDTO{}, err
	}

	fields := value.(map[string]interface{})
	return model.CreateTodoDTO{
		Title:       fields["title"].(string),
		Description: optionalString(fields, "description"),
	}, nil
}

// DecodeUpdateTodo checks that value is an object whose title, description and completed
// fields, when present, are a string, a string and a boolean.
func DecodeUpdateTodo(value interface{}) (model.UpdateTodoDTO, error) {
	if err := validate(updateTodo, value); err != nil {
		return model.UpdateTodoDTO{}, err
	}

	fields := value.(map[string]interface{})
	dto := model.UpdateTodoDTO{
		Title:       optionalString(fields, "title"),
		Description: optionalString(fields, "description"),
	}
	if completed, ok := fields["completed"].(bool); ok {
		dto.Completed = &completed
	}
	return dto, nil
}

func IsCreateTodoDTO(value interface{}) bool {
	_, err := DecodeCreateTodo(value)
	return err == nil
}

func IsUpdateTodoDTO(value interface{}) bool {
	_, err := DecodeUpdateTodo(value)
	return err == nil
}

func optionalString(fields map[string]interface{}, key string) *string {
	value, ok := fields[key].(string)
	if !ok {
		return nil
	}
	return &value
}

func validate(schema *jsonschema.Schema, value interface{}) error {
	switch value.(type) {
	case nil, bool, float64, json.Number, string, []interface{}, map[string]interface{}:
	default:
		return &ValidationError{Reasons: []string{fmt.Sprintf("/: unsupported value type %T", value)}}
	}

	err := schema.Validate(value)
	if err == nil {
		return nil
	}

	result := &ValidationError{}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Reasons = append(result.Reasons, err.Error())
		return result
	}
	collectReasons(result, ve)
	return result
}

func collectReasons(result *ValidationError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		result.Reasons = append(result.Reasons, location+": "+err.Message)
		return
	}

	for _, cause := range err.Causes {
		collectReasons(result, cause)
	}
}
