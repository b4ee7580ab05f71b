package models

import (
	"errors"
	"fmt"
)

// Domain error kinds. Each maps to a distinct caller-visible failure at the
// request boundary; store connectivity errors are wrapped and pass through
// without matching any of these.
var (
	ErrNotFound             = errors.New("the entity does not exist")
	ErrAlreadyExists        = errors.New("the entity already exists")
	ErrInvalidCredentials   = errors.New("the user/password is incorrect")
	ErrClassificationFailed = errors.New("emotion classification failed")
	ErrNoEmotionData        = errors.New("no emotion data recorded yet")
)

// NotFoundError wraps ErrNotFound with the identifier that failed to resolve,
// so handlers can echo it back to the caller.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.Identifier)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound builds a NotFoundError for the given identifier.
func NotFound(identifier string) error {
	return &NotFoundError{Identifier: identifier}
}
