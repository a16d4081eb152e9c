package entities

// Outcome is the terminal state of a delivery attempt
type Outcome string

const (
	OutcomeDelivered            Outcome = "delivered"
	OutcomeNotFound             Outcome = "not_found"
	OutcomeUnavailable          Outcome = "unavailable"
	OutcomeFailed               Outcome = "failed"
	OutcomeRateLimitedExhausted Outcome = "rate_limited_exhausted"
)

// Result describes what Deliver did
type Result struct {
	Outcome     Outcome
	ContentID   string
	ContentType string
	// MessageRef is the message ID in the user's private chat, zero unless delivered
	MessageRef int
	// Redelivered is set when an earlier delivery of the same content was replaced
	Redelivered bool
	// Label is the link classification, empty for videos
	Label string
}

// URLButton is an inline button opening a URL
type URLButton struct {
	Text string
	URL  string
}

// OutgoingMessage is a text message to a private chat
type OutgoingMessage struct {
	ChatID         int64
	Text           string
	Button         *URLButton
	DisablePreview bool
}
