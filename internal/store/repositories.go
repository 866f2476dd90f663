package store

import (
	"github.com/avoronin/go-todo-app/internal/logger"
)

// Repositories bundles all data-access objects behind one wiring point.
// Each service binary constructs the full set and uses the repositories it
// needs: the auth service reads users, the todo service reads todos.
type Repositories struct {
	Users UserRepository
	Todos TodoRepository
}

// NewRepositories constructs every repository on top of the shared database
// connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		Users: NewUserRepository(db, logger),
		Todos: NewTodoRepository(db, logger),
	}
}
