package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/Conte777/GateFlow/internal/domain/transport"
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// descriptionRules maps fragments of Bot API error descriptions to transport errors.
// Order matters: the first matching fragment wins.
var descriptionRules = []struct {
	fragment string
	err      error
}{
	{"user not found", transport.ErrNotParticipant},
	{"participant_id_invalid", transport.ErrNotParticipant},
	{"user_not_participant", transport.ErrNotParticipant},
	{"member list is inaccessible", transport.ErrChatAdminRequired},
	{"chat_admin_required", transport.ErrChatAdminRequired},
	{"not enough rights", transport.ErrChatAdminRequired},
	{"bot is not a member", transport.ErrChatAdminRequired},
	{"message to copy not found", transport.ErrMediaMissing},
	{"message can't be copied", transport.ErrMediaMissing},
	{"media_empty", transport.ErrMediaMissing},
	{"message_id_invalid", transport.ErrInvalidReference},
	{"bot was blocked by the user", transport.ErrUserBlocked},
	{"user is deactivated", transport.ErrUserBlocked},
	{"chat not found", transport.ErrChatUnavailable},
	{"channel_private", transport.ErrChatUnavailable},
}

// classifyError translates a go-telegram/bot error into the transport error contract.
// Unknown errors are returned wrapped with op.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var tooMany *tgbot.TooManyRequestsError
	if errors.As(err, &tooMany) {
		return fmt.Errorf("%s: %w", op, pkgerrors.NewRateLimitError(time.Duration(tooMany.RetryAfter)*time.Second))
	}

	desc := strings.ToLower(err.Error())
	for _, rule := range descriptionRules {
		if strings.Contains(desc, rule.fragment) {
			return fmt.Errorf("%s: %w: %s", op, rule.err, err.Error())
		}
	}

	if errors.Is(err, tgbot.ErrorForbidden) {
		return fmt.Errorf("%s: %w: %s", op, transport.ErrChatUnavailable, err.Error())
	}

	return fmt.Errorf("%s: %w", op, err)
}
