// Package errors contains domain-specific errors for the access domain
package errors

import (
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

var (
	// ErrRateLimitExhausted is returned when membership lookups stay rate limited after one retry
	ErrRateLimitExhausted = pkgerrors.NewInternalError("membership lookup rate limited, try again later")
)
