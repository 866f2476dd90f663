package adapter

import (
	"context"

	"github.com/avoronin/go-todo-app/models"
)

// APIClient is the programmatic client for the two services. It keeps the
// access/refresh token pair and transparently refreshes and retries once
// when an access token expires mid-session.
type APIClient interface {
	// Register creates an account and stores the returned token pair.
	Register(ctx context.Context, req models.RegisterRequest) (models.TokenPair, error)

	// Login authenticates and stores the returned token pair.
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)

	// Refresh exchanges the stored refresh token for a new access token.
	Refresh(ctx context.Context) (string, error)

	// Profile returns the authenticated account record.
	Profile(ctx context.Context) (models.User, error)

	// Logout notifies the auth service and drops the stored token pair.
	// Purely client-side beyond the courtesy call: nothing is revoked.
	Logout(ctx context.Context) error

	// CreateTodo stores a new todo owned by the authenticated user.
	CreateTodo(ctx context.Context, req models.CreateTodoRequest) (models.Todo, error)

	// ListTodos returns the caller's todos, optionally filtered by
	// completion flag.
	ListTodos(ctx context.Context, completed *bool) ([]models.Todo, error)

	// GetTodo returns a single todo by id.
	GetTodo(ctx context.Context, id string) (models.Todo, error)

	// UpdateTodo applies a partial update to a todo.
	UpdateTodo(ctx context.Context, id string, patch models.TodoUpdate) (models.Todo, error)

	// DeleteTodo removes a todo.
	DeleteTodo(ctx context.Context, id string) error

	// AdminListTodos returns every todo. Requires an admin account.
	AdminListTodos(ctx context.Context) ([]models.Todo, error)

	// AdminDeleteTodo removes any todo by id. Requires an admin account.
	AdminDeleteTodo(ctx context.Context, id string) error

	// SetTokens replaces the stored token pair.
	SetTokens(pair models.TokenPair)

	// Tokens returns the currently stored token pair.
	Tokens() models.TokenPair

	// UserID reports the user id carried by the stored access token,
	// read from its subject claim without a round trip. Returns 0 when
	// no session is active.
	UserID() int64
}
