package service

import (
	"context"

	"github.com/avoronin/go-todo-app/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

// AuthService owns the account lifecycle and the token contract: issuing
// access/refresh token pairs, refreshing access tokens, and verifying
// presented access tokens.
type AuthService interface {
	// RegisterUser validates and creates a new account with the USER role.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates an existing account by email and password.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// CreateTokenPair issues a signed access/refresh token pair for user.
	CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error)

	// RefreshAccessToken verifies refreshToken, re-reads the referenced user
	// and mints a new access token. The refresh token itself is not rotated.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	// GetProfile returns the account record for the given user id.
	GetProfile(ctx context.Context, userID int64) (models.User, error)

	// VerifyAccessToken validates a presented access token and returns the
	// caller identity encoded in it. The single gate in front of every
	// protected operation.
	VerifyAccessToken(ctx context.Context, tokenString string) (models.Caller, error)
}

// TodoService orchestrates todo CRUD, applying the ownership/role rule
// around every store operation.
type TodoService interface {
	// Create stores a new incomplete todo owned by the caller.
	Create(ctx context.Context, caller models.Caller, req models.CreateTodoRequest) (models.Todo, error)

	// Get returns a single todo if the caller owns it or is an admin.
	Get(ctx context.Context, caller models.Caller, id string) (models.Todo, error)

	// List returns the caller's todos, optionally filtered by completion.
	// Admin callers receive every todo and the filter is ignored.
	List(ctx context.Context, caller models.Caller, completed *bool) ([]models.Todo, error)

	// Update patches a todo if the caller owns it or is an admin.
	Update(ctx context.Context, caller models.Caller, id string, patch models.TodoUpdate) (models.Todo, error)

	// Delete removes a todo if the caller owns it or is an admin.
	Delete(ctx context.Context, caller models.Caller, id string) error

	// ListAll returns every todo. The admin-only route guard sits in front
	// of it; the method itself performs no role check.
	ListAll(ctx context.Context) ([]models.Todo, error)

	// AdminDelete removes any todo by id. Guarded by the admin route guard.
	AdminDelete(ctx context.Context, id string) error
}
