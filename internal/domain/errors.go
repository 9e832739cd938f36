// Package domain contains business logic types and errors.
// Domain errors represent business-level outcomes, NOT console messages.
// They are presentation-agnostic and are rendered by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates no catalog record matched.
	ErrNotFound = errors.New("not found")

	// ErrNotRegistered indicates a title has no stock entry in the lending registry.
	ErrNotRegistered = errors.New("not registered")

	// ErrOutOfStock indicates a registered title has no copies left to lend.
	ErrOutOfStock = errors.New("out of stock")

	// ErrValidation indicates input failed validation.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	Key    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// NotRegisteredError reports a borrow or return against a title the
// lending registry has never initialized.
type NotRegisteredError struct {
	Title string
}

// Error implements the error interface.
func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("title %q is not registered in the library", e.Title)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotRegisteredError) Unwrap() error {
	return ErrNotRegistered
}

// NewNotRegisteredError creates a not registered error for title.
func NewNotRegisteredError(title string) error {
	return &NotRegisteredError{Title: title}
}

// OutOfStockError reports a borrow against a title whose count is zero.
type OutOfStockError struct {
	Title string
}

// Error implements the error interface.
func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("title %q is out of stock", e.Title)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}

// NewOutOfStockError creates an out of stock error for title.
func NewOutOfStockError(title string) error {
	return &OutOfStockError{Title: title}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotRegistered checks if an error is a not registered error.
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}

// IsOutOfStock checks if an error is an out of stock error.
func IsOutOfStock(err error) bool {
	return errors.Is(err, ErrOutOfStock)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
