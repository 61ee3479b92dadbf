package chat

import "time"

// Session captures a transient anonymous conversation with the widget.
// It lives only as long as the process; there is no persistence.
type Session struct {
	ID        string    `json:"sessionId"`
	CreatedAt time.Time `json:"startedAt"`
}
