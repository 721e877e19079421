package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/spurlabs/support-chat/backend/internal/config"
	"github.com/spurlabs/support-chat/backend/internal/model/chat"
)

// Service generates assistant replies for the support chat. It hides every
// upstream failure behind FallbackReply so callers always receive text.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the generation chain. It never fails: missing
// credentials or a chain that cannot be compiled leave the service in a
// degraded state where Reply returns the fallback.
func NewService(ctx context.Context, cfg config.AIConfig) *Service {
	svc := &Service{cfg: cfg}

	if !cfg.Enabled() {
		log.Println("[ai] generation credentials not configured, replies degrade to fallback")
		return svc
	}

	chain, err := buildChain(ctx, cfg)
	if err != nil {
		log.Printf("[ai] failed to initialize generation chain, replies degrade to fallback: %v", err)
		return svc
	}

	svc.chain = chain
	return svc
}

func buildChain(ctx context.Context, cfg config.AIConfig) (compose.Runnable[map[string]any, *schema.Message], error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}
	return runnable, nil
}

// Enabled reports whether a live model backs Reply.
func (s *Service) Enabled() bool {
	return s.chain != nil
}

// Reply produces the assistant response for the current user message given
// the prior turns. The prior turns must not include the message itself. The
// returned text is always non-empty.
func (s *Service) Reply(ctx context.Context, history []chat.Message, userMessage string) string {
	if s.chain == nil {
		return FallbackReply
	}

	input := map[string]any{
		"system":  systemInstruction,
		"history": s.buildHistoryMessages(history),
		"query":   userMessage,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		log.Printf("[ai] generation failed, returning fallback: %v", err)
		return FallbackReply
	}
	if response == nil || response.Content == "" {
		log.Println("[ai] empty completion, returning fallback")
		return FallbackReply
	}

	log.Printf("[ai] generated reply, length=%d", len(response.Content))
	return response.Content
}

// buildHistoryMessages maps stored turns to model roles. HistoryLimit, when
// set, keeps only the most recent turns.
func (s *Service) buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if s.cfg.HistoryLimit > 0 && len(messages) > s.cfg.HistoryLimit {
		startIdx = len(messages) - s.cfg.HistoryLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Sender {
		case chat.SenderUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.SenderAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
