// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST APIs of the auth and todo services. Authentication, role
// guarding, logging and tracing concerns are all handled at this layer
// before requests are forwarded to the service layer.
package http

import (
	"context"
	"net/http"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/service"
	"github.com/avoronin/go-todo-app/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token
// via [utils.ParseBearerToken], validates it through
// [service.AuthService.VerifyAccessToken], and — on success — stores the
// caller identity in the request context under [utils.CallerCtxKey] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader]).
//   - The token is expired, malformed, carries the wrong issuer or an
//     unknown role, or fails the signature check.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		caller, err := h.services.AuthService.VerifyAccessToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during verifying token")
			http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		// Store the caller identity in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.CallerCtxKey, caller)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
