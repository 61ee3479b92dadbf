// Package assistant sequences one chat turn: gather inventory context,
// call the completion endpoint, and assemble a response. Every path
// ends in a usable response; failures fall back to the local keyword
// responder instead of surfacing errors.
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/centralaluminiosdelvalle/backend/internal/config"
	chatmodel "github.com/centralaluminiosdelvalle/backend/internal/model/chat"
	invmodel "github.com/centralaluminiosdelvalle/backend/internal/model/inventory"
)

// WelcomeMessage opens every new chat session.
const WelcomeMessage = "¡Hola! Soy el asistente virtual de Central de Aluminios del Valle. Puedo ayudarte con información sobre productos, inventarios, cotizaciones y más. ¿En qué puedo ayudarte hoy?"

// maxProductMatches caps how many matched items ride along as payload.
const maxProductMatches = 3

// followUpSuggestions is attached to every successful AI answer.
var followUpSuggestions = []string{
	"Ver productos",
	"Consultar inventario",
	"Solicitar cotización",
	"Información de la empresa",
}

// InventoryProvider supplies the snapshot embedded into each prompt.
type InventoryProvider interface {
	GetInventoryData(ctx context.Context) invmodel.Snapshot
}

// generator is the slice of compose.Runnable the assistant needs.
type generator interface {
	Invoke(ctx context.Context, input map[string]any, opts ...compose.Option) (*schema.Message, error)
}

// Service orchestrates chat turns against the completion endpoint.
type Service struct {
	inventory InventoryProvider
	chain     generator
}

// NewService builds the assistant. When the completion credential is
// absent the assistant still answers, using the local responder only.
func NewService(ctx context.Context, inv InventoryProvider, cfg config.AIConfig) (*Service, error) {
	svc := &Service{inventory: inv}

	if !cfg.Enabled() {
		return svc, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// AIEnabled reports whether the completion chain is wired up.
func (s *Service) AIEnabled() bool {
	return s.chain != nil
}

// Handle answers one user turn. It never returns an error: completion
// failures are logged and answered by the local responder instead.
func (s *Service) Handle(ctx context.Context, userText string) chatmodel.Response {
	snapshot := s.inventory.GetInventoryData(ctx)

	if s.chain == nil {
		return respondLocally(snapshot.Items, userText)
	}

	out, err := s.chain.Invoke(ctx, map[string]any{
		"system": buildSystemPrompt(snapshot),
		"query":  userText,
	})
	if err != nil {
		log.Printf("[assistant] completion call failed: %v", err)
		return respondLocally(snapshot.Items, userText)
	}
	if strings.TrimSpace(out.Content) == "" {
		log.Printf("[assistant] completion returned empty content")
		return respondLocally(snapshot.Items, userText)
	}

	response := chatmodel.Response{
		Message:     out.Content,
		Kind:        chatmodel.KindText,
		Suggestions: followUpSuggestions,
	}

	if matches := matchItems(snapshot.Items, userText, maxProductMatches); len(matches) > 0 {
		response.Kind = chatmodel.KindProduct
		response.Payload = matches
	}

	return response
}

// matchItems selects items whose first name token appears in the user
// text, or vice versa, case-insensitively. Only the first token is
// considered so color/size suffixes do not block a match. limit <= 0
// means unlimited.
func matchItems(items []invmodel.Item, userText string, limit int) []invmodel.Item {
	query := strings.ToLower(strings.TrimSpace(userText))
	if query == "" {
		return nil
	}

	var matches []invmodel.Item
	for _, item := range items {
		fields := strings.Fields(item.Name)
		if len(fields) == 0 {
			continue
		}
		first := strings.ToLower(fields[0])

		if strings.Contains(query, first) || strings.Contains(first, query) {
			matches = append(matches, item)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}
	return matches
}
