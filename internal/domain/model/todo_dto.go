package model

type CreateTodoDTO struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateTodoDTO carries only the fields present in the request body; nil means keep.
type UpdateTodoDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TodoStats summarizes the store contents.
type TodoStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}
