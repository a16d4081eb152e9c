package telegram

import (
	"strings"

	"github.com/go-telegram/bot/models"

	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	"github.com/Conte777/GateFlow/internal/domain/bot/consts"
)

func officialChannelRow(channel string) []models.InlineKeyboardButton {
	handle := strings.TrimPrefix(channel, "@")
	if handle == "" {
		return nil
	}
	return []models.InlineKeyboardButton{{Text: "📢 Join Official Channel", URL: "https://t.me/" + handle}}
}

func startKeyboard(channel string) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	if row := officialChannelRow(channel); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{{Text: "📖 How to Use", CallbackData: consts.CallbackHowToUse}},
		[]models.InlineKeyboardButton{{Text: "ℹ️ About", CallbackData: consts.CallbackAbout}},
	)
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func helpKeyboard(channel string) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	if row := officialChannelRow(channel); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows, []models.InlineKeyboardButton{{Text: "🔙 Back", CallbackData: consts.CallbackBackToStart}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// joinKeyboard lists one button per resolvable channel plus the re-check button
func joinKeyboard(prompt *accessEntities.Prompt) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(prompt.Targets)+1)
	for _, target := range prompt.Targets {
		rows = append(rows, []models.InlineKeyboardButton{{Text: "📢 Join " + target.Title, URL: target.URL}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         "✅ আমি জয়েন করেছি / I've Joined",
		CallbackData: recheckData(prompt.ContentID),
	}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func adminKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{
			{Text: "📊 Statistics", CallbackData: consts.CallbackAdminPrefix + "stats"},
			{Text: "📢 Channels", CallbackData: consts.CallbackAdminPrefix + "channels"},
		},
		{{Text: "❌ Close", CallbackData: consts.CallbackAdminPrefix + "close"}},
	}}
}

func backKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "🔙 Back to Menu", CallbackData: consts.CallbackAdminPrefix + "back"}},
	}}
}
