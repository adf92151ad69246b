// Package common defines sentinel errors and small helpers shared by the
// wordbook packages. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Document errors.
	ErrInvalidDocument = errors.New("invalid vault document")
	ErrCorruptStorage  = errors.New("corrupt vault storage")
	ErrInvalidBackup   = errors.New("invalid backup file")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")

	// Enrichment errors.
	ErrRateLimited = errors.New("rate limited")
)

// NotFoundError reports which node of the vault tree could not be found.
type NotFoundError struct {
	Kind string // "day", "set" or "word"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound is a shorthand constructor for *NotFoundError.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// RateLimitError is returned once the enrichment quota of the current window
// is exhausted. RetryAfter is rounded up to whole seconds.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("API rate limit exceeded. Please wait %d seconds.", int(e.RetryAfter/time.Second))
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}
