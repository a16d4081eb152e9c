package telegram

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-telegram/bot/models"

	"github.com/Conte777/GateFlow/internal/domain/bot/consts"
	"github.com/Conte777/GateFlow/internal/domain/bot/entities"
	boterrors "github.com/Conte777/GateFlow/internal/domain/bot/errors"
)

// commandName returns the command of a message text without the leading
// slash and the @bot suffix, or "" when the text is not a command
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	name, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	return strings.ToLower(name)
}

// commandArgs returns the whitespace separated arguments after the command
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// contentIDFromStart extracts the content id from a /start deep link payload
func contentIDFromStart(text string) (string, bool) {
	args := commandArgs(text)
	if len(args) == 0 {
		return "", false
	}

	contentID, ok := strings.CutPrefix(args[0], consts.DeepLinkContentPrefix)
	if !ok || contentID == "" {
		return "", false
	}
	return contentID, true
}

func parseChannelID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id == 0 {
		return 0, boterrors.ErrInvalidArgument
	}
	return id, nil
}

// recheckData builds the callback payload of the re-check button. Telegram
// limits callback data to 64 bytes, longer ids fall back to a bare re-check.
func recheckData(contentID string) string {
	data := consts.CallbackCheckMembership + consts.CallbackSeparator + contentID
	if contentID == "" || len(data) > 64 {
		return consts.CallbackCheckMembership
	}
	return data
}

// contentIDFromRecheck is the inverse of recheckData
func contentIDFromRecheck(data string) string {
	_, contentID, _ := strings.Cut(data, consts.CallbackSeparator)
	return contentID
}

func deepLink(botUsername, contentID string) string {
	if botUsername == "" {
		return ""
	}
	return "https://t.me/" + botUsername + "?start=" + consts.DeepLinkContentPrefix + contentID
}

// extractURLs returns the links of a message in order of appearance. Entity
// offsets and lengths are counted in UTF-16 code units.
func extractURLs(text string, msgEntities []models.MessageEntity) []string {
	var (
		encoded []uint16
		urls    []string
	)

	for _, e := range msgEntities {
		switch e.Type {
		case models.MessageEntityTypeURL:
			if encoded == nil {
				encoded = utf16.Encode([]rune(text))
			}
			if e.Offset < 0 || e.Length <= 0 || e.Offset+e.Length > len(encoded) {
				continue
			}
			urls = append(urls, string(utf16.Decode(encoded[e.Offset:e.Offset+e.Length])))
		case models.MessageEntityTypeTextLink:
			if e.URL != "" {
				urls = append(urls, e.URL)
			}
		}
	}

	return urls
}

// channelPost converts a channel update into a ChannelPost
func channelPost(msg *models.Message) *entities.ChannelPost {
	post := &entities.ChannelPost{
		ChannelID: msg.Chat.ID,
		MessageID: msg.ID,
		HasMedia:  msg.Video != nil || msg.Document != nil,
	}

	if msg.Text != "" {
		post.Caption = msg.Text
		post.URLs = extractURLs(msg.Text, msg.Entities)
	} else {
		post.Caption = msg.Caption
		post.URLs = extractURLs(msg.Caption, msg.CaptionEntities)
	}

	return post
}
