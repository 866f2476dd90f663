package service

import (
	"github.com/avoronin/go-todo-app/internal/config"
	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/store"
)

// Services bundles the business-logic layer behind one wiring point.
// Both service binaries construct the full set from the same repositories;
// each router only exposes the routes its service owns.
type Services struct {
	AuthService AuthService
	TodoService TodoService
}

// NewServices constructs every service on top of the given repositories.
func NewServices(repositories *store.Repositories, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(repositories.Users, cfg, logger),
		TodoService: NewTodoService(repositories.Todos, logger),
	}
}
