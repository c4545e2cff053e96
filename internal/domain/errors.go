package domain

import (
	"errors"
	"fmt"
)

// Lookup errors.
var (
	ErrInvalidRef           = errors.New("invalid pokemon name")
	ErrNotFound             = errors.New("pokemon not found")
	ErrGenerationNotFound   = errors.New("generation not found")
	ErrInvalidGenerationRef = errors.New("invalid generation number")
	ErrInvalidQuery         = errors.New("invalid query")
)

// Authentication errors.
var (
	ErrAuthFailed      = errors.New("authentication failed")
	ErrTokenGeneration = errors.New("token generation failed")
)

// Catalog signals. The catalog adapter reports absence and rejection with
// these; usecases translate them into lookup errors.
var (
	ErrCatalogNotFound    = errors.New("catalog resource not found")
	ErrCatalogBadRequest  = errors.New("catalog rejected request")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// External service errors.
var (
	ErrIdentityProviderUnavailable = errors.New("identity provider unavailable")
)

// RefError ties a lookup error to the client-supplied reference that caused it.
type RefError struct {
	Err error
	Ref string
}

// NewRefError wraps err with the offending reference.
func NewRefError(err error, ref string) *RefError {
	return &RefError{Err: err, Ref: ref}
}

func (e *RefError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Ref)
}

func (e *RefError) Unwrap() error {
	return e.Err
}
