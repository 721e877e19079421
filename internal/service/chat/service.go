package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spurlabs/support-chat/backend/internal/model/chat"
)

var (
	// ErrEmptyMessage rejects blank or whitespace-only input.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrSessionNotFound rejects a client-supplied session id that was
	// never created. Unknown ids are not re-created.
	ErrSessionNotFound = errors.New("session not found")
)

// ReplyGenerator produces the assistant text for one turn. history holds the
// prior turns only, never the current message. Implementations absorb their
// own failures and always return text.
type ReplyGenerator interface {
	Reply(ctx context.Context, history []chat.Message, userMessage string) string
}

// Reply is the outcome of one completed turn.
type Reply struct {
	Text      string
	SessionID string
}

// Service orchestrates one request/response turn over the store and the
// reply generator.
type Service struct {
	store     chat.Store
	generator ReplyGenerator
}

// New wires the chat service.
func New(store chat.Store, generator ReplyGenerator) *Service {
	return &Service{store: store, generator: generator}
}

// Send runs a full turn: validate, resolve or create the session, persist
// the user message, generate a reply from the prior turns, persist it and
// return it. The sequence is not atomic as a whole; a crash after the user
// insert leaves an unanswered user turn, which the next history fetch simply
// shows.
func (s *Service) Send(ctx context.Context, sessionID, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	conversationID, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}

	if _, err := s.store.AppendMessage(ctx, chat.Message{
		ConversationID: conversationID,
		Sender:         chat.SenderUser,
		Content:        message,
	}); err != nil {
		return Reply{}, fmt.Errorf("persist user message: %w", err)
	}

	transcript, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		return Reply{}, fmt.Errorf("load history: %w", err)
	}

	replyText := s.generator.Reply(ctx, promptContext(transcript), message)

	if _, err := s.store.AppendMessage(ctx, chat.Message{
		ConversationID: conversationID,
		Sender:         chat.SenderAssistant,
		Content:        replyText,
	}); err != nil {
		return Reply{}, fmt.Errorf("persist assistant message: %w", err)
	}

	return Reply{Text: replyText, SessionID: conversationID}, nil
}

// Transcript returns the full ordered history of a session.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	exists, err := s.store.ConversationExists(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	return s.store.ListMessages(ctx, sessionID)
}

func (s *Service) resolveSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		conv, err := s.store.CreateConversation(ctx)
		if err != nil {
			return "", fmt.Errorf("create conversation: %w", err)
		}
		log.Printf("[chat] new session %s", conv.ID)
		return conv.ID, nil
	}

	exists, err := s.store.ConversationExists(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("check session: %w", err)
	}
	if !exists {
		return "", ErrSessionNotFound
	}
	return sessionID, nil
}

// promptContext drops the final entry of the freshly loaded transcript (the
// user message persisted this turn) so the generator never sees the current
// prompt twice. A length-1 transcript yields an empty context.
func promptContext(transcript []chat.Message) []chat.Message {
	if len(transcript) == 0 {
		return nil
	}
	return transcript[:len(transcript)-1]
}
