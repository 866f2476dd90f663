package store

import (
	"context"

	"github.com/avoronin/go-todo-app/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new user and returns the record with
	// server-assigned fields populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves a user by its lowercase-normalized email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves a user by its internal identifier.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// TodoFilter narrows a todo listing. Nil fields mean "no constraint".
type TodoFilter struct {
	// UserID restricts the listing to todos owned by this user.
	UserID *int64

	// Completed restricts the listing by completion flag.
	Completed *bool
}

// TodoRepository is the data-access contract for todo records.
type TodoRepository interface {
	// CreateTodo persists a new todo and returns the record with
	// server-assigned fields populated.
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)

	// GetTodoByID retrieves a single todo by id.
	GetTodoByID(ctx context.Context, id string) (models.Todo, error)

	// ListTodos returns todos matching filter, ordered by creation time
	// descending.
	ListTodos(ctx context.Context, filter TodoFilter) ([]models.Todo, error)

	// UpdateTodo applies a partial update to the todo with the given id and
	// returns the updated record. Fields absent from update stay untouched;
	// the owner id can never be changed.
	UpdateTodo(ctx context.Context, id string, update models.TodoUpdate) (models.Todo, error)

	// DeleteTodo removes the todo with the given id.
	DeleteTodo(ctx context.Context, id string) error
}
