// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Voronin

package config

import "time"

const (
	defaultTokenIssuer          = "go-todo-app"
	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
	defaultRequestTimeout       = 30 * time.Second
)

// applyDefaults fills in values that have a sensible fallback. Signing keys
// and the database DSN deliberately have none: they must come from external
// configuration.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = defaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = defaultRefreshTokenDuration
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the services rely on at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AccessSignKey == "" || cfg.App.RefreshSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.AccessSignKey == cfg.App.RefreshSignKey {
		return ErrSameSignKeys
	}

	return nil
}
