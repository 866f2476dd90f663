package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/avoronin/go-todo-app/models"
)

const (
	createUser = `INSERT INTO users (email, password_hash, first_name, last_name, role)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, email, password_hash, first_name, last_name, role, created_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, first_name, last_name, role, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, password_hash, first_name, last_name, role, created_at
    FROM users
    WHERE user_id = $1;`

	createTodo = `INSERT INTO todos (id, user_id, title, description)
    VALUES ($1, $2, $3, $4)
    RETURNING id, user_id, title, description, completed, created_at, updated_at;`

	getTodoByID = `SELECT id, user_id, title, description, completed, created_at, updated_at
    FROM todos
    WHERE id = $1;`

	deleteTodo = `DELETE FROM todos WHERE id = $1;`
)

// todoColumns is the canonical column order shared by the squirrel-built
// queries and the row scanners.
var todoColumns = []string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListTodosQuery assembles the SELECT for a todo listing. Both filter
// fields are optional; the result is always ordered by creation time,
// newest first.
func buildListTodosQuery(filter TodoFilter) (string, []any, error) {
	qb := psql.
		Select(todoColumns...).
		From("todos").
		OrderBy("created_at DESC")

	if filter.UserID != nil {
		qb = qb.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.Completed != nil {
		qb = qb.Where(sq.Eq{"completed": *filter.Completed})
	}

	return qb.ToSql()
}

// buildUpdateTodoQuery assembles the partial UPDATE for a todo. Only the
// non-nil patch fields produce SET clauses; user_id is never among them.
// updated_at is always advanced. The statement returns the updated row.
func buildUpdateTodoQuery(id string, update models.TodoUpdate) (string, []any, error) {
	if update.Empty() {
		return "", nil, ErrBuildingSQLQuery
	}

	qb := psql.
		Update("todos").
		Set("updated_at", sq.Expr("NOW()"))

	if update.Title != nil {
		qb = qb.Set("title", *update.Title)
	}
	if update.Description != nil {
		qb = qb.Set("description", *update.Description)
	}
	if update.Completed != nil {
		qb = qb.Set("completed", *update.Completed)
	}

	qb = qb.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, user_id, title, description, completed, created_at, updated_at")

	return qb.ToSql()
}
