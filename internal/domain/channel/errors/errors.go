// Package errors contains domain-specific errors for the channel domain
package errors

import (
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// Domain errors for channel registry operations
var (
	ErrInvalidChannelID  = pkgerrors.NewValidationError("channel ID must be a non-zero integer")
	ErrMandatoryChannel  = pkgerrors.NewValidationError("mandatory channel is configured statically")
	ErrDatabaseOperation = pkgerrors.NewInternalError("channel store operation failed")
)
