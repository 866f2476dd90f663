package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/store"
	"github.com/avoronin/go-todo-app/internal/utils"
	"github.com/avoronin/go-todo-app/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tokens, err := h.services.AuthService.CreateTokenPair(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token pair failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, tokens, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		// a missing account and a wrong password answer identically
		if errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Msg("no user was found")
			http.Error(w, "invalid email/password", http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	tokens, err := h.services.AuthService.CreateTokenPair(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token pair failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, tokens, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	accessToken, err := h.services.AuthService.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		// a refresh token naming a vanished subject is as unauthorized as
		// an expired one
		if errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Msg("refresh subject no longer exists")
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AccessTokenResponse{AccessToken: accessToken}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		log.Error().Msg("no caller in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.GetProfile(ctx, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// logout performs no server-side invalidation: tokens are self-expiring and
// no revocation list exists. The endpoint only confirms so clients can drop
// their stored pair.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "Logged out successfully"}, http.StatusOK)
}
