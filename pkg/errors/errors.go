// Package errors provides typed errors for the application
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeConflict
	ErrorTypePermission
	ErrorTypeRateLimit
	ErrorTypeInternal
)

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents invalid input or a malformed reference
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents a missing entity
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// ConflictError represents a state conflict
type ConflictError struct {
	baseError
}

// NewConflictError creates a new ConflictError
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{baseError{msg: msg}}
}

// PermissionError represents missing rights of the bot itself
type PermissionError struct {
	baseError
}

// NewPermissionError creates a new PermissionError
func NewPermissionError(msg string) *PermissionError {
	return &PermissionError{baseError{msg: msg}}
}

// RateLimitError is returned when the platform asks to back off
type RateLimitError struct {
	baseError
	RetryAfter time.Duration
}

// NewRateLimitError creates a new RateLimitError with the platform reported wait
func NewRateLimitError(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{
		baseError:  baseError{msg: fmt.Sprintf("rate limited, retry after %s", retryAfter)},
		RetryAfter: retryAfter,
	}
}

// InternalError represents an internal error
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflictError checks if error is a ConflictError
func IsConflictError(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsPermissionError checks if error is a PermissionError
func IsPermissionError(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

// AsRateLimitError extracts a RateLimitError from the chain
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var target *RateLimitError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsInternalError checks if error is an InternalError
func IsInternalError(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}

// TypeOf returns the ErrorType of the first typed error in the chain
func TypeOf(err error) ErrorType {
	switch {
	case IsValidationError(err):
		return ErrorTypeValidation
	case IsNotFoundError(err):
		return ErrorTypeNotFound
	case IsConflictError(err):
		return ErrorTypeConflict
	case IsPermissionError(err):
		return ErrorTypePermission
	}
	if _, ok := AsRateLimitError(err); ok {
		return ErrorTypeRateLimit
	}
	return ErrorTypeInternal
}
