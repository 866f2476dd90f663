package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/avoronin/go-todo-app/models"
	"github.com/go-resty/resty/v2"
)

// Sentinel errors mapped from HTTP responses. Callers match with [errors.Is].
var (
	// ErrUnauthorized is returned when a request is rejected with 401 and
	// the silent refresh could not recover it.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrForbidden is returned when the authenticated account lacks the
	// rights for the requested todo or route (403).
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound is returned when the targeted entity does not exist (404).
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a unique field is already taken,
	// e.g. registering an existing email (409).
	ErrConflict = errors.New("conflict with existing entity")
)

// mapHTTPError turns a non-2xx response into one of the adapter sentinels,
// keeping the server's error message where one was sent.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	var sentinel error
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		sentinel = fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	var msg models.MessageResponse
	if err := json.Unmarshal(resp.Body(), &msg); err == nil && msg.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, msg.Message)
	}

	return sentinel
}
