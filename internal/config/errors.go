package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates that one of the token signing secrets
	// is missing. Secrets are only accepted from external configuration.
	ErrInvalidAppConfigs = errors.New("invalid app configuration: both signing keys are required")

	// ErrSameSignKeys indicates that the access and refresh signing secrets
	// are identical, which would let a refresh token pass as an access token.
	ErrSameSignKeys = errors.New("invalid app configuration: access and refresh sign keys must differ")
)
