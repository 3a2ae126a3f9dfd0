package entity

// TimestampLayout is the ISO-8601 UTC layout used for CreatedAt and UpdatedAt. Its fixed
// width keeps lexicographic and chronological order identical.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Todo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// Clone returns a copy that shares no memory with t.
func (t Todo) Clone() Todo {
	if t.Description != nil {
		description := *t.Description
		t.Description = &description
	}
	return t
}
