package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	accesserrors "github.com/Conte777/GateFlow/internal/domain/access/errors"
	"github.com/Conte777/GateFlow/internal/domain/bot/entities"
	channelEntities "github.com/Conte777/GateFlow/internal/domain/channel/entities"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

func TestJoinKeyboard(t *testing.T) {
	prompt := &accessEntities.Prompt{
		ContentID: "abc123",
		Targets: []accessEntities.JoinTarget{
			{ChannelID: -100, Title: "Official", URL: "https://t.me/official"},
			{ChannelID: -200, Title: "Extra", URL: "https://t.me/+invite"},
		},
		Omitted: []int64{-300},
	}

	kb := joinKeyboard(prompt)
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "https://t.me/official", kb.InlineKeyboard[0][0].URL)
	assert.Equal(t, "📢 Join Extra", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "check_membership:abc123", kb.InlineKeyboard[2][0].CallbackData)
}

func TestStartKeyboard_WithoutChannelHandle(t *testing.T) {
	assert.Len(t, startKeyboard("@official").InlineKeyboard, 3)
	assert.Equal(t, "https://t.me/official", startKeyboard("@official").InlineKeyboard[0][0].URL)
	assert.Len(t, startKeyboard("").InlineKeyboard, 2)
}

func TestOutcomeText(t *testing.T) {
	assert.Empty(t, outcomeText(deliveryEntities.OutcomeDelivered))
	assert.Equal(t, contentNotFoundText, outcomeText(deliveryEntities.OutcomeNotFound))
	assert.Equal(t, contentUnavailableText, outcomeText(deliveryEntities.OutcomeUnavailable))
	assert.Equal(t, busyText, outcomeText(deliveryEntities.OutcomeRateLimitedExhausted))
	assert.Equal(t, deliveryFailedText, outcomeText(deliveryEntities.OutcomeFailed))
}

func TestRequestErrorText(t *testing.T) {
	assert.Equal(t, busyText, requestErrorText(accesserrors.ErrRateLimitExhausted))
	assert.Equal(t, genericErrorText, requestErrorText(assert.AnError))
}

func TestJoinRequiredText_EscapesName(t *testing.T) {
	text := joinRequiredText("<Bob>", "@official", &accessEntities.Prompt{})

	assert.Contains(t, text, "&lt;Bob&gt;")
	assert.Contains(t, text, "@official")
}

func TestChannelListText(t *testing.T) {
	text := channelListText(&entities.ChannelListing{
		Mandatory: entities.ChatInfo{ID: -100, Title: "Official"},
		Username:  "@official",
		Extra: []entities.ListedChannel{
			{RequiredChannel: channelEntities.RequiredChannel{ChannelID: -200, DisplayName: "Extra", Active: true}, Username: "extra", Reachable: true},
			{RequiredChannel: channelEntities.RequiredChannel{ChannelID: -300, Active: false}},
		},
	})

	assert.Contains(t, text, "<code>-200</code>")
	assert.Contains(t, text, "@extra")
	assert.Contains(t, text, "⏸ disabled")
	assert.Contains(t, text, "<b>Total:</b> 3 channel(s)")
}

func TestStatsText(t *testing.T) {
	text := statsText(&entities.Statistics{Videos: 3, Links: 2, Contents: 5, AvgPerUser: 2.5, MandatoryChannel: -100, Notifications: true})

	assert.Contains(t, text, "Total Videos: 3")
	assert.Contains(t, text, "Avg per User: 2.50")
	assert.Contains(t, text, "Notifications: Enabled")
}

func TestMatchers(t *testing.T) {
	start := matchCommand("start")
	assert.True(t, start(&models.Update{Message: &models.Message{Text: "/start content_x"}}))
	assert.False(t, start(&models.Update{Message: &models.Message{Text: "/stats"}}))
	assert.False(t, start(&models.Update{}))

	post := matchContentChannelPost(-300)
	assert.True(t, post(&models.Update{ChannelPost: &models.Message{Chat: models.Chat{ID: -300}}}))
	assert.False(t, post(&models.Update{ChannelPost: &models.Message{Chat: models.Chat{ID: -1}}}))
}
