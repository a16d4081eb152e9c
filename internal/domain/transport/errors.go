// Package transport holds the error contract of the messaging transport shared
// by the access and delivery domains.
package transport

import (
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// Transport level errors produced by the Telegram adapter. Rate limits are
// reported separately as *pkgerrors.RateLimitError.
var (
	// ErrNotParticipant is returned when the user has no membership record in a chat
	ErrNotParticipant = pkgerrors.NewNotFoundError("user is not a participant")

	// ErrChatAdminRequired is returned when the bot cannot inspect a chat it is not admin of
	ErrChatAdminRequired = pkgerrors.NewPermissionError("bot lacks admin rights in chat")

	// ErrChatUnavailable is returned when the chat is private or does not exist for the bot
	ErrChatUnavailable = pkgerrors.NewPermissionError("chat is not accessible to the bot")

	// ErrMediaMissing is returned when the source message no longer carries media
	ErrMediaMissing = pkgerrors.NewNotFoundError("source media is missing")

	// ErrInvalidReference is returned when the source message reference is invalid
	ErrInvalidReference = pkgerrors.NewValidationError("source message reference is invalid")

	// ErrUserBlocked is returned when the user blocked the bot
	ErrUserBlocked = pkgerrors.NewPermissionError("user blocked the bot")

	// ErrJoinTargetUnavailable is returned when neither a public handle nor an invite link resolves
	ErrJoinTargetUnavailable = pkgerrors.NewNotFoundError("join target unavailable")
)
