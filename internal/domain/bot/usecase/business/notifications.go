package business

import (
	"fmt"
	"html"
	"strings"

	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

type outgoing = deliveryEntities.OutgoingMessage

func newContentNotification(adminID int64, content *contentEntities.ContentDescriptor, channelID int64) *outgoing {
	var b strings.Builder

	b.WriteString("🆕 <b>New Content Added!</b>\n\n")
	fmt.Fprintf(&b, "📋 <b>Copy ID:</b> <code>%s</code>\n", html.EscapeString(content.ID))
	fmt.Fprintf(&b, "📦 <b>Type:</b> %s\n", strings.ToUpper(string(content.Type)))
	if content.Media != nil {
		fmt.Fprintf(&b, "🆔 <b>Message ID:</b> <code>%d</code>\n", content.Media.MessageID)
	}
	if content.URL != "" {
		fmt.Fprintf(&b, "🔗 <b>Link:</b> <code>%s</code>\n", html.EscapeString(content.URL))
	}
	b.WriteString("\n━━━━━━━━━━━━━━━━\n")
	b.WriteString("💡 <b>Next Steps:</b>\n")
	b.WriteString("1. Copy the Copy ID above\n")
	b.WriteString("2. Add it to your Mini App\n")
	b.WriteString("3. Users can now access this content!\n\n")
	fmt.Fprintf(&b, "🎬 Content Channel: <code>%d</code>", channelID)

	return &outgoing{ChatID: adminID, Text: b.String(), DisablePreview: true}
}
