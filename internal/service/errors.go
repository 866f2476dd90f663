package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP layer maps them
// to status codes; callers match with [errors.Is].
var (
	// ErrInvalidDataProvided is returned when a request body fails
	// validation (missing email, malformed email, short password, etc.).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned when the supplied password does not match
	// the stored hash.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenCreationFailed is returned when signing a new token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is returned for any access or refresh token
	// that fails verification: bad signature, malformed payload, wrong
	// issuer, or past expiry. Callers never need to distinguish the cases.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrEmptyTitle is returned when a todo is created or patched with a title that is
	// empty after trimming.
	ErrEmptyTitle = errors.New("todo title must not be empty")

	// ErrAccessDenied is returned when a valid caller lacks the rights to
	// touch the targeted todo: not the owner and not an admin.
	ErrAccessDenied = errors.New("access to this todo is denied")
)
