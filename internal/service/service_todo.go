package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/store"
	"github.com/avoronin/go-todo-app/models"
	"github.com/google/uuid"
)

// CanAccess is the single ownership/role predicate governing read, update
// and delete of an individual todo: an admin may touch anything, everyone
// else only their own records.
//
// The rule is total — it never fails, only answers — so callers translate a
// false result into ErrAccessDenied themselves.
func CanAccess(ownerID, callerID int64, callerRole models.Role) bool {
	return callerRole == models.RoleAdmin || ownerID == callerID
}

// todoService is the concrete implementation of TodoService. Every mutating
// operation is a read-check-then-write sequence with no transaction around
// the two steps: the worst a concurrent delete can do is turn a Forbidden
// into a NotFound.
type todoService struct {
	todoRepository store.TodoRepository
	logger         *logger.Logger
}

// NewTodoService constructs a TodoService wired to the given TodoRepository.
func NewTodoService(todoRepository store.TodoRepository, logger *logger.Logger) TodoService {
	return &todoService{
		todoRepository: todoRepository,
		logger:         logger,
	}
}

// Create validates the title and persists a new todo owned by the caller,
// always starting incomplete.
//
// Returns the created record or ErrEmptyTitle if the title is empty after
// trimming.
func (s *todoService) Create(ctx context.Context, caller models.Caller, req models.CreateTodoRequest) (models.Todo, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		log.Error().Int64("caller", caller.UserID).Msg("empty todo title provided")
		return models.Todo{}, ErrEmptyTitle
	}

	todo := models.Todo{
		ID:          uuid.NewString(),
		UserID:      caller.UserID,
		Title:       title,
		Description: req.Description,
		Completed:   false,
	}

	created, err := s.todoRepository.CreateTodo(ctx, todo)
	if err != nil {
		log.Err(err).Int64("caller", caller.UserID).Msg("todo creation ended with error")
		return models.Todo{}, fmt.Errorf("todo creation ended with error: %w", err)
	}

	log.Info().Str("todo", created.ID).Int64("caller", caller.UserID).Msg("todo created")
	return created, nil
}

// Get fetches a todo by id and applies the access rule.
//
// Returns the record, a wrapped store.ErrTodoNotFound, or ErrAccessDenied.
func (s *todoService) Get(ctx context.Context, caller models.Caller, id string) (models.Todo, error) {
	log := logger.FromContext(ctx)

	todo, err := s.todoRepository.GetTodoByID(ctx, id)
	if err != nil {
		log.Err(err).Str("todo", id).Msg("todo lookup failed")
		return models.Todo{}, fmt.Errorf("todo lookup failed: %w", err)
	}

	if !CanAccess(todo.UserID, caller.UserID, caller.Role) {
		log.Error().Str("todo", id).Int64("caller", caller.UserID).Msg("access to todo denied")
		return models.Todo{}, ErrAccessDenied
	}

	return todo, nil
}

// List returns the caller's todos ordered newest first, optionally filtered
// by completion flag.
//
// Admin callers receive every todo and the completed filter is ignored:
// the admin branch short-circuits before the filter is applied.
func (s *todoService) List(ctx context.Context, caller models.Caller, completed *bool) ([]models.Todo, error) {
	if caller.Role == models.RoleAdmin {
		return s.ListAll(ctx)
	}

	filter := store.TodoFilter{
		UserID:    &caller.UserID,
		Completed: completed,
	}

	todos, err := s.todoRepository.ListTodos(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("caller", caller.UserID).Msg("todo listing failed")
		return nil, fmt.Errorf("todo listing failed: %w", err)
	}

	return todos, nil
}

// Update fetches the todo, applies the access rule, then writes the patch.
// Fields absent from the patch stay untouched; ownership can never change.
// An empty patch is a no-op returning the current record.
//
// A patch may rename the todo but never blank it: a title that is empty
// after trimming is rejected with ErrEmptyTitle, same as on Create.
func (s *todoService) Update(ctx context.Context, caller models.Caller, id string, patch models.TodoUpdate) (models.Todo, error) {
	log := logger.FromContext(ctx)

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			log.Error().Str("todo", id).Int64("caller", caller.UserID).Msg("empty todo title provided")
			return models.Todo{}, ErrEmptyTitle
		}
		patch.Title = &title
	}

	todo, err := s.todoRepository.GetTodoByID(ctx, id)
	if err != nil {
		log.Err(err).Str("todo", id).Msg("todo lookup failed")
		return models.Todo{}, fmt.Errorf("todo lookup failed: %w", err)
	}

	if !CanAccess(todo.UserID, caller.UserID, caller.Role) {
		log.Error().Str("todo", id).Int64("caller", caller.UserID).Msg("access to todo denied")
		return models.Todo{}, ErrAccessDenied
	}

	if patch.Empty() {
		return todo, nil
	}

	updated, err := s.todoRepository.UpdateTodo(ctx, id, patch)
	if err != nil {
		log.Err(err).Str("todo", id).Msg("todo update failed")
		return models.Todo{}, fmt.Errorf("todo update failed: %w", err)
	}

	log.Info().Str("todo", id).Int64("caller", caller.UserID).Msg("todo updated")
	return updated, nil
}

// Delete fetches the todo, applies the access rule, then removes the record.
func (s *todoService) Delete(ctx context.Context, caller models.Caller, id string) error {
	log := logger.FromContext(ctx)

	todo, err := s.todoRepository.GetTodoByID(ctx, id)
	if err != nil {
		log.Err(err).Str("todo", id).Msg("todo lookup failed")
		return fmt.Errorf("todo lookup failed: %w", err)
	}

	if !CanAccess(todo.UserID, caller.UserID, caller.Role) {
		log.Error().Str("todo", id).Int64("caller", caller.UserID).Msg("access to todo denied")
		return ErrAccessDenied
	}

	if err := s.todoRepository.DeleteTodo(ctx, id); err != nil {
		log.Err(err).Str("todo", id).Msg("todo deletion failed")
		return fmt.Errorf("todo deletion failed: %w", err)
	}

	log.Info().Str("todo", id).Int64("caller", caller.UserID).Msg("todo deleted")
	return nil
}

// ListAll returns every todo, newest first. Reached from the admin-only
// route and from the admin branch of List.
func (s *todoService) ListAll(ctx context.Context) ([]models.Todo, error) {
	todos, err := s.todoRepository.ListTodos(ctx, store.TodoFilter{})
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("todo listing failed")
		return nil, fmt.Errorf("todo listing failed: %w", err)
	}

	return todos, nil
}

// AdminDelete removes any todo by id. The role check lives in the route
// guard, not here; the method still reads first so a missing id surfaces
// as NotFound.
func (s *todoService) AdminDelete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := s.todoRepository.GetTodoByID(ctx, id); err != nil {
		log.Err(err).Str("todo", id).Msg("todo lookup failed")
		return fmt.Errorf("todo lookup failed: %w", err)
	}

	if err := s.todoRepository.DeleteTodo(ctx, id); err != nil {
		log.Err(err).Str("todo", id).Msg("todo deletion failed")
		return fmt.Errorf("todo deletion failed: %w", err)
	}

	log.Info().Str("todo", id).Msg("todo deleted by admin")
	return nil
}
