package line

// Inbound webhook payloads. The body is parsed only after the signature
// has been verified against the raw bytes, so these DTOs mirror exactly
// the fields the router needs and ignore everything else LINE sends.

// CallbackRequest is the top-level webhook body: {"events":[...]}.
type CallbackRequest struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event types handled by the router. Other event types (unfollow, join,
// postback, ...) are accepted and ignored.
const (
	EventMessage = "message"
	EventFollow  = "follow"
)

// Event is a single webhook event.
type Event struct {
	Type       string   `json:"type"`
	ReplyToken string   `json:"replyToken"`
	Timestamp  int64    `json:"timestamp"`
	Source     Source   `json:"source"`
	Message    *Message `json:"message,omitempty"`
}

// Source identifies who triggered the event. Only user sources carry a
// userId the sender can push back to.
type Source struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// Message is the message attached to a message event. The router only
// handles type "text"; stickers, images and the rest are ignored.
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}
