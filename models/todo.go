package models

import "time"

// Todo is a task owned by exactly one user. The owning user id is set at
// creation time and can never be altered afterwards.
type Todo struct {
	// ID is the server-generated UUID of the todo.
	ID string `json:"id"`

	// UserID references the owning user. Immutable after creation.
	UserID int64 `json:"userId"`

	// Title is the required, non-empty task title.
	Title string `json:"title"`

	// Description is optional free-form text.
	Description string `json:"description"`

	// Completed marks the task as done. Defaults to false.
	Completed bool `json:"completed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Todo model.
func (t Todo) TableName() string {
	return "todos"
}

// TodoUpdate carries a partial update of a todo. Nil fields are left
// untouched by the store; the owner id is deliberately absent so a patch
// can never reassign ownership.
type TodoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (u TodoUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}
