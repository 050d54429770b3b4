package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultHTTPAddress    = "0.0.0.0:8080"
	defaultTokenIssuer    = "tokenwatch"
	defaultTokenDuration  = 24 * time.Hour
	defaultRequestTimeout = 30 * time.Second
)

// applyDefaults fills in safe defaults for fields that no configuration
// source provided. Secrets and the database DSN have no defaults; their
// absence is a validation error.
func (c *StructuredConfig) applyDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = defaultHTTPAddress
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.App.TokenIssuer == "" {
		c.App.TokenIssuer = defaultTokenIssuer
	}
	if c.App.TokenDuration == 0 {
		c.App.TokenDuration = defaultTokenDuration
	}
	if c.App.BcryptCost == 0 {
		c.App.BcryptCost = bcrypt.DefaultCost
	}
}

// validate checks that the merged configuration is complete enough to start
// the server.
func (c *StructuredConfig) validate() error {
	if c.App.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}
	if c.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}
	if c.App.BcryptCost < bcrypt.MinCost || c.App.BcryptCost > bcrypt.MaxCost {
		return ErrBadBcryptCost
	}

	return nil
}
