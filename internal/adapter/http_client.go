// Package adapter implements the client side of the system: a resty-based
// API client that talks to both services, holds the token pair, and hides
// access-token expiry behind a single silent refresh-and-retry.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/avoronin/go-todo-app/internal/config"
	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/utils"
	"github.com/avoronin/go-todo-app/models"
	"github.com/go-resty/resty/v2"
)

type apiClient struct {
	authClient *utils.HTTPClient
	todoClient *utils.HTTPClient

	mu     sync.RWMutex
	tokens models.TokenPair
	userID int64

	logger *logger.Logger
}

// NewAPIClient constructs an HTTP/REST implementation of [APIClient].
// It normalises and validates the base URLs of the two services from cfg and
// configures one underlying HTTP client per service with the resolved base
// URL and request timeout.
//
// Returns an error if either address is empty or cannot be parsed as a
// valid URL.
func NewAPIClient(cfg config.Adapter, logger *logger.Logger) (APIClient, error) {
	authURL, err := normalizeBaseURL(cfg.AuthAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter auth address: %w", err)
	}
	todoURL, err := normalizeBaseURL(cfg.TodoAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter todo address: %w", err)
	}

	authClient := utils.NewHTTPClient()
	authClient.
		SetBaseURL(authURL).
		SetTimeout(cfg.RequestTimeout)

	todoClient := utils.NewHTTPClient()
	todoClient.
		SetBaseURL(todoURL).
		SetTimeout(cfg.RequestTimeout)

	return &apiClient{authClient: authClient, todoClient: todoClient, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetTokens implements [APIClient]. It replaces the stored token pair and
// re-reads the caller's user id from the access token subject.
func (c *apiClient) SetTokens(pair models.TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = models.TokenPair{
		AccessToken:  strings.TrimSpace(pair.AccessToken),
		RefreshToken: strings.TrimSpace(pair.RefreshToken),
	}
	c.userID = 0
	if c.tokens.AccessToken != "" {
		id, err := utils.ParseUserIDFromJWT(c.tokens.AccessToken)
		if err != nil {
			c.logger.Err(err).Msg("could not read user id from access token")
			return
		}
		c.userID = id
	}
}

// Tokens implements [APIClient]. It returns the stored token pair.
func (c *apiClient) Tokens() models.TokenPair {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

// UserID implements [APIClient]. It returns the user id carried by the
// stored access token, or 0 when no session is active.
func (c *apiClient) UserID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *apiClient) setAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens.AccessToken = strings.TrimSpace(token)
}

// Register implements [APIClient]. It POSTs the registration data to the
// auth service and stores the returned token pair for subsequent calls.
func (c *apiClient) Register(ctx context.Context, req models.RegisterRequest) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := c.authClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&pair).
		Post("/auth/register")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	c.SetTokens(pair)
	return pair, nil
}

// Login implements [APIClient]. It authenticates against the auth service
// and stores the returned token pair.
func (c *apiClient) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := c.authClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&pair).
		Post("/auth/login")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}

	c.SetTokens(pair)
	return pair, nil
}

// Refresh implements [APIClient]. It exchanges the stored refresh token for
// a new access token and stores it. The refresh token itself stays as it
// was: the server performs no rotation.
func (c *apiClient) Refresh(ctx context.Context) (string, error) {
	refreshToken := c.Tokens().RefreshToken
	if refreshToken == "" {
		return "", ErrUnauthorized
	}

	var result models.AccessTokenResponse
	resp, err := c.authClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&result).
		Post("/auth/refresh")
	if err != nil {
		return "", fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	c.setAccessToken(result.AccessToken)
	return result.AccessToken, nil
}

// Profile implements [APIClient].
func (c *apiClient) Profile(ctx context.Context) (models.User, error) {
	resp, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/auth/profile")
	}, c.authClient)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode profile response: %w", err)
	}
	return user, nil
}

// Logout implements [APIClient]. The server holds no session state, so the
// only real effect is dropping the stored pair; the call is a courtesy.
func (c *apiClient) Logout(ctx context.Context) error {
	_, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Post("/auth/logout")
	}, c.authClient)

	c.SetTokens(models.TokenPair{})
	return err
}

// CreateTodo implements [APIClient].
func (c *apiClient) CreateTodo(ctx context.Context, todoReq models.CreateTodoRequest) (models.Todo, error) {
	resp, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(todoReq).
			Post("/todos")
	}, c.todoClient)
	if err != nil {
		return models.Todo{}, err
	}

	return decodeTodo(resp)
}

// ListTodos implements [APIClient].
func (c *apiClient) ListTodos(ctx context.Context, completed *bool) ([]models.Todo, error) {
	resp, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		if completed != nil {
			req.SetQueryParam("completed", strconv.FormatBool(*completed))
		}
		return req.Get("/todos")
	}, c.todoClient)
	if err != nil {
		return nil, err
	}

	return decodeTodos(resp)
}

// GetTodo implements [APIClient].
func (c *apiClient) GetTodo(ctx context.Context, id string) (models.Todo, error) {
	resp, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/todos/" + id)
	}, c.todoClient)
	if err != nil {
		return models.Todo{}, err
	}

	return decodeTodo(resp)
}

// UpdateTodo implements [APIClient].
func (c *apiClient) UpdateTodo(ctx context.Context, id string, patch models.TodoUpdate) (models.Todo, error) {
	resp, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(patch).
			Patch("/todos/" + id)
	}, c.todoClient)
	if err != nil {
		return models.Todo{}, err
	}

	return decodeTodo(resp)
}

// DeleteTodo implements [APIClient].
func (c *apiClient) DeleteTodo(ctx context.Context, id string) error {
	_, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Delete("/todos/" + id)
	}, c.todoClient)
	return err
}

// AdminListTodos implements [APIClient].
func (c *apiClient) AdminListTodos(ctx context.Context) ([]models.Todo, error) {
	resp, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/todos/admin/all")
	}, c.todoClient)
	if err != nil {
		return nil, err
	}

	return decodeTodos(resp)
}

// AdminDeleteTodo implements [APIClient].
func (c *apiClient) AdminDeleteTodo(ctx context.Context, id string) error {
	_, err := c.doAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Delete("/todos/admin/" + id)
	}, c.todoClient)
	return err
}

// doAuthed sends one bearer-authenticated request and decorates it with the
// silent-refresh behaviour: a 401 answer triggers a single refresh call
// followed by one replay of the original request. A second 401, or a failed
// refresh, surfaces as ErrUnauthorized; the stored pair is dropped so the
// caller can re-authenticate. Concurrent expired requests each refresh on
// their own; no coalescing is attempted.
func (c *apiClient) doAuthed(ctx context.Context, send func(*resty.Request) (*resty.Response, error), client *utils.HTTPClient) (*resty.Response, error) {
	resp, err := send(c.authedRequest(ctx, client))
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}

	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, mapHTTPError(resp)
	}

	if c.Tokens().RefreshToken == "" {
		return nil, ErrUnauthorized
	}

	c.logger.Debug().Msg("access token rejected, refreshing and retrying once")
	if _, err := c.Refresh(ctx); err != nil {
		c.SetTokens(models.TokenPair{})
		return nil, ErrUnauthorized
	}

	resp, err = send(c.authedRequest(ctx, client))
	if err != nil {
		return nil, fmt.Errorf("api request retry: %w", err)
	}

	return resp, mapHTTPError(resp)
}

func (c *apiClient) authedRequest(ctx context.Context, client *utils.HTTPClient) *resty.Request {
	req := client.R().SetContext(ctx)
	if token := c.Tokens().AccessToken; token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func decodeTodo(resp *resty.Response) (models.Todo, error) {
	var todo models.Todo
	if err := json.Unmarshal(resp.Body(), &todo); err != nil {
		return models.Todo{}, fmt.Errorf("decode todo response: %w", err)
	}
	return todo, nil
}

func decodeTodos(resp *resty.Response) ([]models.Todo, error) {
	var todos []models.Todo
	if err := json.Unmarshal(resp.Body(), &todos); err != nil {
		return nil, fmt.Errorf("decode todo list response: %w", err)
	}
	return todos, nil
}
