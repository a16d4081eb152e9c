// Package errors contains domain-specific errors for the content domain
package errors

import (
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// Domain errors for content operations
var (
	ErrContentNotFound    = pkgerrors.NewNotFoundError("content not found")
	ErrEmptyContentID     = pkgerrors.NewValidationError("content ID cannot be empty")
	ErrUnknownContentType = pkgerrors.NewValidationError("content type must be video or link")
	ErrInvalidMediaRef    = pkgerrors.NewValidationError("video content requires a channel and message ID")
	ErrMissingURL         = pkgerrors.NewValidationError("link content requires a URL")
	ErrAmbiguousPayload   = pkgerrors.NewValidationError("content must carry either media or a URL, not both")
	ErrDatabaseOperation  = pkgerrors.NewInternalError("content store operation failed")
)
