package domain

import (
	"errors"
	"fmt"
)

// ErrStorage is the base class for any database-layer failure. Errors wrapping
// it always force a rollback of the request transaction.
var ErrStorage = errors.New("storage failure")

// ErrConstraint marks unique-key or referential violations. It wraps
// ErrStorage so callers that only care about the broad class can still match
// with errors.Is(err, ErrStorage).
var ErrConstraint = fmt.Errorf("constraint violation: %w", ErrStorage)

var ErrUserExists = errors.New("username already taken")
var ErrAccountNotFound = errors.New("account not found")
var ErrDishNotFound = errors.New("dish not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrEmptyPatch = errors.New("no updatable fields in patch")
var ErrEmptyOrder = errors.New("order has no items")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrSessionNotFound = errors.New("session not found")
