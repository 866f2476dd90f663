package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/utils"
	"github.com/avoronin/go-todo-app/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		log.Error().Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	todo, err := h.services.TodoService.Create(ctx, caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todo, http.StatusCreated)
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		log.Error().Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var completed *bool
	if raw := r.URL.Query().Get("completed"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			log.Err(err).Str("completed", raw).Msg("invalid completed filter")
			http.Error(w, "invalid `completed` query parameter", http.StatusBadRequest)
			return
		}
		completed = &value
	}

	todos, err := h.services.TodoService.List(ctx, caller, completed)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todos, http.StatusOK)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		log.Error().Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	todo, err := h.services.TodoService.Get(ctx, caller, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		log.Error().Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var patch models.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	todo, err := h.services.TodoService.Update(ctx, caller, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		log.Error().Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.TodoService.Delete(ctx, caller, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adminListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.services.TodoService.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todos, http.StatusOK)
}

func (h *Handler) adminDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := h.services.TodoService.AdminDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
