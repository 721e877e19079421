package chat

import (
	"context"
	"errors"
)

// ErrConversationNotFound is returned when a message references a
// conversation that was never created. Appends never auto-create headers.
var ErrConversationNotFound = errors.New("conversation not found")

// Store exposes conversation persistence for the chat service.
type Store interface {
	// CreateConversation inserts a header row with a fresh id.
	CreateConversation(ctx context.Context) (Conversation, error)
	// ConversationExists reports whether the header row exists.
	ConversationExists(ctx context.Context, id string) (bool, error)
	// AppendMessage inserts a message row and returns it with its assigned
	// id and timestamp. Fails with ErrConversationNotFound when the
	// conversation does not exist.
	AppendMessage(ctx context.Context, msg Message) (Message, error)
	// ListMessages returns the full history of a conversation in ascending
	// timestamp order. No pagination.
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	Close() error
}
