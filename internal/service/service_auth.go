package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avoronin/go-todo-app/internal/config"
	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/store"
	"github.com/avoronin/go-todo-app/internal/utils"
	"github.com/avoronin/go-todo-app/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// accessSignKey is the HMAC secret used to sign and verify access tokens.
	accessSignKey string

	// refreshSignKey is the HMAC secret used to sign and verify refresh
	// tokens. Distinct from accessSignKey so one token kind can never pass
	// as the other.
	refreshSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessDuration and refreshDuration control how long the two token
	// kinds remain valid.
	accessDuration  time.Duration
	refreshDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		accessSignKey:   cfg.AccessSignKey,
		refreshSignKey:  cfg.RefreshSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		logger:          logger,
	}
}

// RegisterUser creates a new user account.
//
// The email is trimmed and lowercased before storage so lookups are
// case-insensitive, the password is hashed with bcrypt, and the new account
// always receives the USER role: there is no way to register an admin.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if the email is malformed or the password is
//     shorter than the minimum.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if !validEmail(email) || len(req.Password) < minPasswordLength {
		log.Error().Str("email", email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         models.RoleUser,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It normalizes the email, looks up the account, and compares the supplied
// password against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrUserNotFound).
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		log.Error().Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateTokenPair issues a signed access/refresh token pair for the given user.
//
// The access token carries subject id, email and role with a minutes-scale
// expiry; the refresh token carries only the subject id with a days-scale
// expiry. Each kind is signed with its own secret.
//
// Returns the pair on success or a wrapped error if signing fails.
func (a *authService) CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	accessToken, err := utils.GenerateAccessToken(a.tokenIssuer, user, a.accessDuration, a.accessSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateRefreshToken(a.tokenIssuer, user.UserID, a.refreshDuration, a.refreshSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshAccessToken validates the presented refresh token and mints a new
// access token for its subject.
//
// The user is re-read from the store so role or email changes made since the
// refresh token was issued are reflected in the new access token. The refresh
// token itself is not rotated: it stays valid until its own expiry however
// many times it is used.
//
// Returns the new access token or:
//   - ErrTokenIsExpiredOrInvalid on any refresh token validation failure.
//   - A wrapped store.ErrUserNotFound if the subject no longer exists.
func (a *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	log := logger.FromContext(ctx)

	claims, err := utils.ValidateAndParseToken(refreshToken, a.refreshSignKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Msg("refresh token validation failed")
		return "", ErrTokenIsExpiredOrInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("refresh subject lookup failed")
		return "", fmt.Errorf("refresh subject lookup failed: %w", err)
	}

	accessToken, err := utils.GenerateAccessToken(a.tokenIssuer, user, a.accessDuration, a.accessSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return accessToken, nil
}

// GetProfile returns the account record for the given user id.
func (a *authService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile lookup failed")
		return models.User{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return user, nil
}

// VerifyAccessToken validates a raw access token string and extracts the
// caller identity.
//
// It verifies the signature, the issuer claim and the expiry. Any validation
// failure (expired, wrong issuer, malformed, unknown role) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors. Stateless and side-effect-free.
func (a *authService) VerifyAccessToken(ctx context.Context, tokenString string) (models.Caller, error) {
	claims, err := utils.ValidateAndParseToken(tokenString, a.accessSignKey, a.tokenIssuer)
	if err != nil {
		return models.Caller{}, ErrTokenIsExpiredOrInvalid
	}

	caller, err := claims.Caller()
	if err != nil || !caller.Role.Valid() {
		return models.Caller{}, ErrTokenIsExpiredOrInvalid
	}

	return caller, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
