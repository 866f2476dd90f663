package models

// Request and response bodies exchanged between the services and their
// clients. Kept together so the server handlers and the client adapter
// share one wire vocabulary.

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenResponse is the body returned by POST /auth/refresh.
// The original refresh token stays valid: no rotation is performed.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// MessageResponse is a generic confirmation body, e.g. for POST /auth/logout.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
