// Package errors contains domain-specific errors for the delivery domain
package errors

import (
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// Domain errors for delivery operations
var (
	ErrInvalidKeepLast    = pkgerrors.NewValidationError("retention keepLast must be at least 1")
	ErrDatabaseOperation  = pkgerrors.NewInternalError("delivery ledger operation failed")
	ErrRateLimitExhausted = pkgerrors.NewInternalError("delivery rate limited after retry")
	ErrUnsupportedContent = pkgerrors.NewValidationError("content type cannot be delivered")
)
