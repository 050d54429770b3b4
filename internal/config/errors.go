package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration cannot support a running server.
var (
	// ErrNoTokenSignKey is returned when no JWT signing key was provided by
	// any configuration source.
	ErrNoTokenSignKey = errors.New("token sign key is not specified")

	// ErrNoDatabaseDSN is returned when no database connection string was
	// provided by any configuration source.
	ErrNoDatabaseDSN = errors.New("database DSN is not specified")

	// ErrBadBcryptCost is returned when the configured bcrypt work factor is
	// outside the range supported by the bcrypt implementation.
	ErrBadBcryptCost = errors.New("bcrypt cost is out of range")
)
