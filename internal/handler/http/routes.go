package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// InitAuthRouter builds the router served by the auth service binary.
//
// Register, login and refresh are open; profile and logout sit behind the
// bearer-token middleware. Every route passes through trace-id and request
// logging first.
func (h *Handler) InitAuthRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/refresh", h.refresh)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/auth/profile", h.profile)
		r.Post("/auth/logout", h.logout)
	})

	return router
}

// InitTodoRouter builds the router served by the todo service binary.
//
// Every route requires a valid access token. The /todos/admin subtree adds
// the admin role guard on top; chi matches the static "admin" segment before
// the {id} parameter, so the admin routes shadow the id routes cleanly.
func (h *Handler) InitTodoRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/todos", func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/", h.createTodo)
		r.Get("/", h.listTodos)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/all", h.adminListTodos)
			r.Delete("/{id}", h.adminDeleteTodo)
		})

		r.Get("/{id}", h.getTodo)
		r.Patch("/{id}", h.updateTodo)
		r.Delete("/{id}", h.deleteTodo)
	})

	return router
}
