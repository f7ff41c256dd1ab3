package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/synthpanel/focusgroup/internal/config"
	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
)

// Service wraps the two LLM call shapes the engine needs: high-variance
// persona replies and near-deterministic responder selection.
type Service struct {
	replyChain  compose.Runnable[map[string]any, *schema.Message]
	selectChain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds both chat models from configuration and compiles their
// chains.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	replyModel, err := cfg.NewReplyModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reply model: %w", err)
	}

	selectModel, err := cfg.NewSelectionModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create selection model: %w", err)
	}

	return NewServiceWithModels(ctx, replyModel, selectModel)
}

// NewServiceWithModels compiles the chains over caller-supplied chat models.
// Tests use it to substitute deterministic stubs.
func NewServiceWithModels(ctx context.Context, replyModel, selectModel model.ChatModel) (*Service, error) {
	replyTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	replyChain := compose.NewChain[map[string]any, *schema.Message]()
	replyChain.AppendChatTemplate(replyTemplate)
	replyChain.AppendChatModel(replyModel)

	reply, err := replyChain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply chain: %w", err)
	}

	selectTemplate := prompt.FromMessages(
		schema.FString,
		schema.UserMessage(selectionUserPrompt),
	)

	selectChain := compose.NewChain[map[string]any, *schema.Message]()
	selectChain.AppendChatTemplate(selectTemplate)
	selectChain.AppendChatModel(selectModel)

	sel, err := selectChain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile selection chain: %w", err)
	}

	return &Service{replyChain: reply, selectChain: sel}, nil
}

// GenerateReply produces one in-character reply for a persona. ownStatements
// is the persona's memory sequence; transcript supplies the shared recency
// window.
func (s *Service) GenerateReply(ctx context.Context, p persona.Persona, category string, ownStatements []string, transcript []conversation.Entry, question string) (string, error) {
	input := map[string]any{
		"system": BuildPersonaSystemPrompt(p, category, ownStatements),
		"query":  BuildContextualQuestion(transcript, question),
	}

	response, err := s.replyChain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply for persona %d: %w", p.ID, err)
	}

	log.Printf("[ai] generated reply persona=%d name=%s length=%d", p.ID, p.Name, len(response.Content))
	return strings.TrimSpace(response.Content), nil
}

// SelectResponders asks the model which personas would naturally answer the
// question and resolves its answer to persona ids in speaking order. Parse
// failures never surface: they collapse to the first-3 fallback. A failed
// model call does surface, like any other generation failure.
func (s *Service) SelectResponders(ctx context.Context, question string, personas []persona.Persona, transcript []conversation.Entry, memory conversation.Memory) ([]int, error) {
	response, err := s.selectChain.Invoke(ctx, selectionInput(question, personas, transcript, memory))
	if err != nil {
		return nil, fmt.Errorf("failed to run responder selection: %w", err)
	}

	if selected := parseSelection(response.Content, personas); len(selected) > 0 {
		return selected, nil
	}

	log.Printf("[ai] selection output unusable, falling back to first 3: %.120q", response.Content)
	return fallbackResponders(personas), nil
}
