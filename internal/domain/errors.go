package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when an operation that requires an acting user
// (saving, liking, viewing) is attempted without one. Nothing is applied —
// no relation is created and no counter changes.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
