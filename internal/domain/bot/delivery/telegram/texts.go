package telegram

import (
	"fmt"
	"html"
	"strings"

	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	"github.com/Conte777/GateFlow/internal/domain/bot/entities"
	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
)

const divider = "━━━━━━━━━━━━━━━━"

// User facing texts are bilingual, Bangla first
const (
	contentNotFoundText = "❌ দুঃখিত, এই কন্টেন্ট খুঁজে পাওয়া যায়নি।\n\n" +
		"<i>Sorry, this content was not found.</i>\n\n" +
		"অনুগ্রহ করে সঠিক লিংক ব্যবহার করুন বা Mini App থেকে আবার চেষ্টা করুন।"

	contentUnavailableText = "❌ এই কন্টেন্টটি এখন আর পাওয়া যাচ্ছে না।\n\n" +
		"<i>This content is no longer available.</i>"

	deliveryFailedText = "⚠️ কন্টেন্ট ডেলিভারি ব্যর্থ হয়েছে। অনুগ্রহ করে আবার চেষ্টা করুন।\n\n" +
		"<i>Content delivery failed. Please try again.</i>"

	busyText = "⏳ এই মুহূর্তে অনেক অনুরোধ আসছে। কিছুক্ষণ পর আবার চেষ্টা করুন।\n\n" +
		"<i>Too many requests right now. Please try again in a moment.</i>"

	genericErrorText = "⚠️ একটি সমস্যা হয়েছে। অনুগ্রহ করে আবার চেষ্টা করুন।\n\n" +
		"<i>An error occurred. Please try again.</i>"

	verifiedText = "✅ <b>Membership Verified!</b>\n\n" +
		"আপনি এখন কন্টেন্ট অ্যাক্সেস করতে পারবেন।\n" +
		"<i>You can now access content.</i>\n\n" +
		"অনুগ্রহ করে আপনার Mini App থেকে আবার কন্টেন্ট সিলেক্ট করুন।\n" +
		"<i>Please select your content from the Mini App again.</i>"

	verifiedDeliveringText = "✅ <b>Membership Verified!</b>\n\n" +
		"আপনার কন্টেন্ট পাঠানো হচ্ছে।\n" +
		"<i>Sending your content now.</i>"

	verifiedAlert   = "✅ Verified! You can now access content."
	notJoinedAlert  = "❌ আপনি এখনও সব চ্যানেলে জয়েন করেননি। অনুগ্রহ করে প্রথমে জয়েন করুন।\nYou have not joined every channel yet."
	checkErrorAlert = "⚠️ Error checking membership. Please try again."

	unauthorizedText = "❌ Unauthorized access."
)

func welcomeText(channel string) string {
	return fmt.Sprintf(`🎬 <b>স্বাগতম!</b>

আপনাকে আমাদের প্রিমিয়াম কন্টেন্ট ডিস্ট্রিবিউশন বটে স্বাগতম!
<i>Welcome to the premium content delivery bot!</i>

📢 <b>কন্টেন্ট পেতে:</b>
আমাদের অফিশিয়াল চ্যানেলে জয়েন করুন এবং Mini App থেকে আপনার পছন্দের কন্টেন্ট সিলেক্ট করুন।
<i>Join our official channel and pick your content in the Mini App.</i>

🎯 <b>Official Channel:</b> %s`, html.EscapeString(channel))
}

func helpText(channel string) string {
	return fmt.Sprintf(`📖 <b>কিভাবে ব্যবহার করবেন</b>

1️⃣ আমাদের অফিশিয়াল চ্যানেলে জয়েন করুন
2️⃣ Mini App খুলুন
3️⃣ আপনার পছন্দের কন্টেন্ট সিলেক্ট করুন
4️⃣ "Open in Bot" বাটনে ক্লিক করুন
5️⃣ বট স্বয়ংক্রিয়ভাবে কন্টেন্ট পাঠাবে

%s
<b>📖 How to Use</b>

1️⃣ Join our official channel
2️⃣ Open the Mini App
3️⃣ Select your preferred content
4️⃣ Click the "Open in Bot" button
5️⃣ The bot sends the content automatically

🎬 <b>Official Channel:</b> %s

💡 <b>Tips:</b>
• Forwarding is disabled for delivered videos
• Requesting the same content again sends a fresh copy`, divider, html.EscapeString(channel))
}

func aboutText(channel string) string {
	return fmt.Sprintf(`ℹ️ <b>About</b>

🎬 Telegram Mini App এর সাথে যুক্ত একটি কন্টেন্ট ডিস্ট্রিবিউশন বট।
<i>A content delivery bot integrated with a Telegram Mini App.</i>

<b>🌟 Features:</b>
✅ Secure content delivery
✅ Duplicate aware redelivery
✅ Protected content (no forwarding)

<b>📢 Official Channel:</b> %s`, html.EscapeString(channel))
}

func joinRequiredText(firstName, channel string, prompt *accessEntities.Prompt) string {
	var b strings.Builder

	b.WriteString("🔒 <b>Channel Membership Required</b>\n\n")
	if firstName != "" {
		fmt.Fprintf(&b, "হ্যালো %s! 👋\n\n", html.EscapeString(firstName))
	}
	b.WriteString("কন্টেন্ট পেতে আপনাকে আমাদের চ্যানেলে জয়েন করতে হবে।\n")
	b.WriteString("<i>To access content, you must join our channels.</i>\n\n")
	b.WriteString("✅ চ্যানেলে জয়েন করার পর <b>\"আমি জয়েন করেছি\"</b> বাটনে ক্লিক করুন।\n")
	b.WriteString("<i>After joining, tap \"I've Joined\".</i>")

	if prompt != nil && len(prompt.Targets) == 0 && channel != "" {
		fmt.Fprintf(&b, "\n\n🎬 <b>Official Channel:</b> %s", html.EscapeString(channel))
	}

	return b.String()
}

func adminPanelText() string {
	return fmt.Sprintf(`👨‍💼 <b>Admin Control Panel</b>

%s
<b>💡 Commands:</b>

/stats - View statistics
/listchannels - List required channels
/addchannel <code>ID</code> - Add required channel
/removechannel <code>ID</code> - Remove channel
/enablechannel <code>ID</code> - Require channel again
/disablechannel <code>ID</code> - Stop requiring channel
/delcontent <code>COPY_ID</code> - Delete content
/testcontent - Register test content
%s`, divider, divider)
}

func statsText(s *entities.Statistics) string {
	notifications := "Disabled"
	if s.Notifications {
		notifications = "Enabled"
	}

	return fmt.Sprintf(`📊 <b>Bot Statistics</b>

%s
<b>📦 Content:</b>
📹 Total Videos: %d
🔗 Total Links: %d
📚 Total Contents: %d

<b>👥 Users:</b>
👤 Unique Users: %d
📨 Total Deliveries: %d
📊 Avg per User: %.2f

<b>📢 Channels:</b>
🔒 Main Channel: <code>%d</code>
➕ Extra Channels: %d (%d active)

%s
✅ Notifications: %s`,
		divider,
		s.Videos, s.Links, s.Contents,
		s.UniqueUsers, s.Deliveries, s.AvgPerUser,
		s.MandatoryChannel, s.ExtraChannels, s.ActiveChannels,
		divider, notifications)
}

func channelListText(l *entities.ChannelListing) string {
	var b strings.Builder

	b.WriteString("📢 <b>Force Join Channels</b>\n\n")
	b.WriteString(divider + "\n<b>🔒 Main Channel:</b>\n")
	if l.Mandatory.Title != "" {
		fmt.Fprintf(&b, "• %s\n", html.EscapeString(l.Mandatory.Title))
	}
	fmt.Fprintf(&b, "• ID: <code>%d</code>\n", l.Mandatory.ID)
	if l.Username != "" {
		fmt.Fprintf(&b, "• Username: %s\n", html.EscapeString(l.Username))
	}

	b.WriteString("\n" + divider + "\n<b>➕ Extra Channels:</b>\n")
	if len(l.Extra) == 0 {
		b.WriteString("\n<i>No extra channels added.</i>\n")
	}
	for _, ch := range l.Extra {
		name := ch.DisplayName
		if name == "" {
			name = "Unnamed"
		}
		state := "✅ active"
		if !ch.Active {
			state = "⏸ disabled"
		}
		handle := "Private"
		if ch.Username != "" {
			handle = "@" + ch.Username
		}
		if !ch.Reachable {
			handle = "⚠️ bot cannot read this channel"
		}
		fmt.Fprintf(&b, "\n• %s\n  ID: <code>%d</code>\n  %s, %s\n",
			html.EscapeString(name), ch.ChannelID, html.EscapeString(handle), state)
	}

	fmt.Fprintf(&b, "\n%s\n<b>Total:</b> %d channel(s)", divider, 1+len(l.Extra))
	return b.String()
}

func channelAddedText(info *entities.ChatInfo) string {
	return fmt.Sprintf("✅ <b>Channel Added Successfully!</b>\n\n"+
		"📢 <b>Channel:</b> %s\n"+
		"🆔 <b>ID:</b> <code>%d</code>\n\n"+
		"Users will now be required to join this channel.",
		html.EscapeString(info.Title), info.ID)
}

func channelAccessFailedText() string {
	return "❌ <b>Failed to access channel!</b>\n\n" +
		"Make sure:\n" +
		"1. Channel ID is correct\n" +
		"2. Bot is admin in the channel\n" +
		"3. Bot has necessary permissions"
}

func usageText(command, arg, example string) string {
	return fmt.Sprintf("<b>Usage:</b>\n<code>/%s %s</code>\n\n<b>Example:</b>\n<code>/%s %s</code>",
		command, arg, command, example)
}

func testContentHelpText() string {
	return `🧪 <b>Test Content Delivery</b>

1️⃣ <b>Test Video Delivery</b>
   /testcontent video MESSAGE_ID

2️⃣ <b>Test Link Delivery</b>
   /testcontent link YOUR_URL

3️⃣ <b>Generate Test Copy ID</b>
   /testcontent generate

💡 <b>Note:</b> video MESSAGE_ID refers to a post in the content channel.`
}

func testContentSavedText(c *contentEntities.ContentDescriptor, deepLink string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✅ <b>Test %s Saved!</b>\n\n", strings.ToUpper(string(c.Type)))
	fmt.Fprintf(&b, "📋 Copy ID: <code>%s</code>\n", html.EscapeString(c.ID))
	if c.Media != nil {
		fmt.Fprintf(&b, "🆔 Message ID: <code>%d</code>\n", c.Media.MessageID)
	}
	if c.URL != "" {
		fmt.Fprintf(&b, "🔗 Link: <code>%s</code>\n", html.EscapeString(c.URL))
	}
	if deepLink != "" {
		fmt.Fprintf(&b, "\n<b>Test Deep Link:</b>\n%s", html.EscapeString(deepLink))
	}

	return b.String()
}
