package domain

import "errors"

// ErrNotFound is returned when the requested record does not exist under the
// requesting owner. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input breaks a business
// rule (missing description, negative budget, month out of range). Handlers
// map it to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by repo functions when an insert violates a
// uniqueness constraint (Postgres error 23505). The tag sync engine relies
// on this sentinel to detect concurrent-creation races and resolve them by
// re-lookup instead of failing the whole batch.
var ErrConflict = errors.New("conflict")
