package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrInvalidDataProvided is returned when a request is missing fields
	// required for the operation to proceed.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned when the supplied password does not
	// verify against the stored digest.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenCreationFailed is returned when signing a session token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised verification failure for
	// malformed, unsigned, tampered, or expired session tokens. Callers are
	// deliberately not told which check failed.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidEntryID is returned when a watchlist entry identifier is
	// syntactically malformed. The check happens before any storage access.
	ErrInvalidEntryID = errors.New("invalid watchlist entry id")
)

// ValidationError reports a missing or malformed required field of a request
// body, carrying the violated field's wire name so that a caller can correct
// the request.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid required field: %s", e.Field)
}

// AsValidationError unwraps err into a *ValidationError if it carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
