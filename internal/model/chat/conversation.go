package chat

import "time"

// Conversation is the durable header of one support thread. It is created
// once and never mutated; messages reference it by id.
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
