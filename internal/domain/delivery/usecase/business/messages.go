package business

import (
	"fmt"
	"html"

	"github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

const videoConfirmationText = `✅ <b>Video delivered successfully!</b>

🎬 আপনার ভিডিও পাঠানো হয়েছে।
<i>Your video has been sent.</i>

💡 <b>Note:</b> Forwarding is disabled for security.`

// linkPresentation builds the message that carries a link delivery
func linkPresentation(userID int64, link, label string) *entities.OutgoingMessage {
	text := fmt.Sprintf(`🔗 <b>Link Content Ready!</b>

📎 <b>Link Type:</b> %s
🌐 <b>URL:</b> <code>%s</code>

━━━━━━━━━━━━━━━━
নিচের বাটনে ক্লিক করে লিংক খুলুন।
<i>Click the button below to open the link.</i>`, label, html.EscapeString(link))

	return &entities.OutgoingMessage{
		ChatID:         userID,
		Text:           text,
		Button:         &entities.URLButton{Text: "🔗 Open " + label, URL: link},
		DisablePreview: true,
	}
}

func videoConfirmation(userID int64) *entities.OutgoingMessage {
	return &entities.OutgoingMessage{ChatID: userID, Text: videoConfirmationText}
}
