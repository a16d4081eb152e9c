// Package errors contains bot domain errors
package errors

import (
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// Domain errors for bot operations
var (
	// ErrUnauthorized is returned when a non-admin invokes an admin operation
	ErrUnauthorized = pkgerrors.NewPermissionError("admin rights required")

	// ErrInvalidArgument is returned when a command argument cannot be parsed
	ErrInvalidArgument = pkgerrors.NewValidationError("invalid command argument")

	// ErrChannelInaccessible is returned when the bot cannot read a channel being added
	ErrChannelInaccessible = pkgerrors.NewPermissionError("channel is not accessible to the bot")
)
