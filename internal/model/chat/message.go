package chat

import "time"

// Sender tags for message rows.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message persists a single turn of a conversation. Rows are append-only;
// CreatedAt (with ID as tiebreak) gives the total order within a thread.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
