package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every token issued by the auth
// service. It embeds [jwt.RegisteredClaims] for the standard claim fields
// (sub, iss, iat, exp) and adds the identity attributes the todo service
// needs to authorize requests without a user lookup.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Email is the account email at issuance time.
	Email string `json:"email,omitempty"`

	// Role is the account role at issuance time. Empty on refresh tokens,
	// which only need to name their subject.
	Role Role `json:"role,omitempty"`
}

// UserID extracts the user identifier from the "sub" claim,
// parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (c *TokenClaims) UserID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(sub, 10, 64)
}

// TokenPair bundles the two tokens handed to a client on successful
// registration or login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Caller is the authenticated identity extracted from a verified access
// token. It travels through the request context from the auth middleware
// to the handlers.
type Caller struct {
	UserID int64
	Email  string
	Role   Role
}

// Caller builds a [Caller] from the claim set. Returns an error if the
// subject claim cannot be parsed into a user id.
func (c *TokenClaims) Caller() (Caller, error) {
	id, err := c.UserID()
	if err != nil {
		return Caller{}, err
	}
	return Caller{UserID: id, Email: c.Email, Role: c.Role}, nil
}
