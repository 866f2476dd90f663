package http

import (
	"errors"
	"net/http"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/service"
	"github.com/avoronin/go-todo-app/internal/store"
	"github.com/avoronin/go-todo-app/internal/utils"
	"github.com/avoronin/go-todo-app/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrEmptyTitle:              http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccessDenied:            http.StatusForbidden,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrTodoNotFound:       http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers the request with a JSON message body and
// the mapped status code. Mapped sentinel errors expose their own message;
// anything unmapped is a 500 with the generic status text so internals never
// leak to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := http.StatusText(status)
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			message = target.Error()
			break
		}
	}

	log.Err(err).Int("status", status).Msg("request failed")
	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
}
