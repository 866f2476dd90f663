package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avoronin/go-todo-app/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed HMAC-SHA256 JWT access token for the
// given user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a decimal string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - email, role:     identity attributes needed for authorization without
//     a user lookup
//
// All parameters are required. Returns an error if any of them are empty or zero.
func GenerateAccessToken(issuer string, user models.User, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: user.Email,
		Role:  user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a signed HMAC-SHA256 JWT refresh token.
//
// The refresh token carries only the registered claims (iss, sub, iat, exp):
// the subject is all that is needed to re-read the user and mint a fresh
// access token, and keeping email/role out of it means stale attributes can
// never be replayed through a refresh.
func GenerateRefreshToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to an int64 user id
//
// Returns the parsed claim set or an error if validation fails, claims are
// missing, or the subject cannot be parsed.
func ValidateAndParseToken(tokenString, tokenSignKey, tokenIssuer string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return nil, errors.New("empty subject error")
	}
	if _, err := strconv.ParseInt(sub, 10, 64); err != nil {
		return nil, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	return claims, nil
}

// ParseBearerToken extracts the token string from a raw "Authorization"
// HTTP header value of the form "<scheme> <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ParseUserIDFromJWT extracts the subject claim from tokenString without
// verifying the signature. Client-side only: used by the adapter to learn
// its own user id from a freshly issued token.
func ParseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
