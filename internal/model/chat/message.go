package chat

import "time"

// Kind classifies what a message or response carries besides plain text.
type Kind string

const (
	KindText      Kind = "text"
	KindProduct   Kind = "product"
	KindInventory Kind = "inventory"
	KindQuote     Kind = "quote"
	KindError     Kind = "error"
)

// Message is one turn of a conversation, kept in the session transcript.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Kind      Kind      `json:"type"`
	Payload   any       `json:"data,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

// Response is what the assistant hands back for one user turn. The
// caller maps it 1:1 into a bot Message.
type Response struct {
	Message     string   `json:"message"`
	Kind        Kind     `json:"type"`
	Payload     any      `json:"data,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
