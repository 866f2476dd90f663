package http

import (
	"net/http"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/utils"
	"github.com/avoronin/go-todo-app/models"
)

// requireAdmin is the role guard for the /todos/admin subtree. It runs after
// [Handler.auth] in the middleware pipeline, so a caller identity is already
// in the context; a non-admin caller is rejected with 403 before the handler
// is reached.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		caller, ok := utils.GetCallerFromContext(r.Context())
		if !ok {
			log.Error().Msg("no caller in request context")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if caller.Role != models.RoleAdmin {
			log.Error().Int64("caller", caller.UserID).Str("role", string(caller.Role)).Msg("admin route denied")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
