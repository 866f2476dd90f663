package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/models"
)

// todoRepository is the PostgreSQL-backed implementation of [TodoRepository].
// It operates on the "todos" table. Static queries live in sql_queries.go;
// the filtered listing and the partial update are built with squirrel.
type todoRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTodoRepository constructs a [TodoRepository] backed by the provided
// database connection and logger.
func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	logger.Debug().Msg("creating todo repository")
	return &todoRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTodo persists a new todo record and returns the fully populated
// [models.Todo] with server-assigned fields (Completed default, timestamps).
func (r *todoRepository) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTodo, todo.ID, todo.UserID, todo.Title, todo.Description)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*todoRepository.CreateTodo").Msg("error: row is nil")
		return models.Todo{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := scanTodoRow(row)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.CreateTodo").Msg("error: scanning error")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// GetTodoByID retrieves a single todo by id.
//
// Error handling:
//   - No matching row → [ErrTodoNotFound].
//   - Scan failure → wrapped [ErrScanningRow].
func (r *todoRepository) GetTodoByID(ctx context.Context, id string) (models.Todo, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getTodoByID, id)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*todoRepository.GetTodoByID").Msg("error: row is nil")
		return models.Todo{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	todo, err := scanTodoRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		log.Err(err).Str("func", "*todoRepository.GetTodoByID").Msg("error: scanning error")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return todo, nil
}

// ListTodos returns todos matching filter, newest first.
func (r *todoRepository) ListTodos(ctx context.Context, filter TodoFilter) ([]models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTodosQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error scanning todo rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return todos, nil
}

// UpdateTodo applies a partial update and returns the updated record.
//
// Error handling:
//   - Empty patch → [ErrBuildingSQLQuery].
//   - No matching row → [ErrTodoNotFound].
func (r *todoRepository) UpdateTodo(ctx context.Context, id string, update models.TodoUpdate) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTodoQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.UpdateTodo").Msg("error building update query")
		return models.Todo{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*todoRepository.UpdateTodo").Msg("error: row is nil")
		return models.Todo{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	updated, err := scanTodoRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		log.Err(err).Str("func", "*todoRepository.UpdateTodo").Msg("error: scanning error")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// DeleteTodo removes the todo with the given id. Deleting an id that does
// not exist returns [ErrTodoNotFound]: repeated deletes are not idempotent
// successes.
func (r *todoRepository) DeleteTodo(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteTodo, id)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.DeleteTodo").Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

func scanTodoRow(row *sql.Row) (models.Todo, error) {
	var t models.Todo
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Todo{}, err
	}
	return t, nil
}
