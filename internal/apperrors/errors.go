package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNoSnapshot indicates that a rollback was requested for an entity that
// carries no prior-state snapshot.
var ErrNoSnapshot = errors.New("entity has no snapshot to restore from")
