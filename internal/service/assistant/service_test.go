package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	chatmodel "github.com/centralaluminiosdelvalle/backend/internal/model/chat"
	invmodel "github.com/centralaluminiosdelvalle/backend/internal/model/inventory"
)

type staticInventory struct {
	items []invmodel.Item
}

func (s *staticInventory) GetInventoryData(_ context.Context) invmodel.Snapshot {
	return invmodel.Snapshot{Items: s.items, LastUpdated: time.Now()}
}

type fakeChain struct {
	content string
	err     error
	system  string
	query   string
}

func (f *fakeChain) Invoke(_ context.Context, input map[string]any, _ ...compose.Option) (*schema.Message, error) {
	f.system, _ = input["system"].(string)
	f.query, _ = input["query"].(string)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func defaultItems() []invmodel.Item {
	return []invmodel.Item{
		{Name: "CABEZAL 5020 NAT", Quantity: 36, Row: 4},
		{Name: "CABEZAL 5020 BP", Quantity: 107, Row: 5},
		{Name: "CABEZAL 5020 NEG", Quantity: 87, Row: 6},
		{Name: "SILLAR 5020 BP", Quantity: 65, Row: 8},
	}
}

func TestHandleWithoutAIGenericInvitation(t *testing.T) {
	svc := &Service{inventory: &staticInventory{items: defaultItems()}}

	resp := svc.Handle(context.Background(), "hola")

	if resp.Message == "" {
		t.Fatal("response message must not be empty")
	}
	if resp.Kind != chatmodel.KindText {
		t.Fatalf("expected kind text, got %q", resp.Kind)
	}
	if len(resp.Suggestions) != 4 {
		t.Fatalf("expected exactly 4 suggestions, got %d", len(resp.Suggestions))
	}
}

func TestHandleWithoutAIInventoryMatch(t *testing.T) {
	svc := &Service{inventory: &staticInventory{items: defaultItems()}}

	resp := svc.Handle(context.Background(), "tienen cabezal disponible")

	if resp.Kind != chatmodel.KindInventory {
		t.Fatalf("expected kind inventory, got %q", resp.Kind)
	}
	if !strings.Contains(resp.Message, "CABEZAL 5020 NAT: 36 unidades disponibles") {
		t.Fatalf("expected exact quantity in bullet list, got %q", resp.Message)
	}
}

func TestHandleAISuccess(t *testing.T) {
	chain := &fakeChain{content: "Claro, tenemos 36 unidades del cabezal natural."}
	svc := &Service{inventory: &staticInventory{items: defaultItems()}, chain: chain}

	resp := svc.Handle(context.Background(), "tienen cabezal disponible")

	if resp.Message != chain.content {
		t.Fatalf("generated text must pass through verbatim, got %q", resp.Message)
	}
	if resp.Kind != chatmodel.KindProduct {
		t.Fatalf("expected kind product for a matching query, got %q", resp.Kind)
	}
	matches, ok := resp.Payload.([]invmodel.Item)
	if !ok {
		t.Fatalf("payload should carry matched items, got %T", resp.Payload)
	}
	if len(matches) != 3 {
		t.Fatalf("payload capped at 3 matches, got %d", len(matches))
	}
	if len(resp.Suggestions) != 4 {
		t.Fatalf("expected 4 follow-up suggestions, got %d", len(resp.Suggestions))
	}
	if chain.query != "tienen cabezal disponible" {
		t.Errorf("user text should be the user turn, got %q", chain.query)
	}
}

func TestHandleAISuccessNoMatch(t *testing.T) {
	chain := &fakeChain{content: "Con gusto te ayudo."}
	svc := &Service{inventory: &staticInventory{items: defaultItems()}, chain: chain}

	resp := svc.Handle(context.Background(), "qué horario tienen")

	if resp.Kind != chatmodel.KindText {
		t.Fatalf("expected kind text without matches, got %q", resp.Kind)
	}
	if resp.Payload != nil {
		t.Fatalf("expected no payload, got %+v", resp.Payload)
	}
}

func TestHandleAIFailureFallsBack(t *testing.T) {
	chain := &fakeChain{err: errors.New("connection refused")}
	svc := &Service{inventory: &staticInventory{items: defaultItems()}, chain: chain}

	resp := svc.Handle(context.Background(), "tienen cabezal disponible")

	if resp.Kind != chatmodel.KindInventory {
		t.Fatalf("expected local responder on completion failure, got kind %q", resp.Kind)
	}
	if resp.Message == "" {
		t.Fatal("fallback response must not be empty")
	}
}

func TestHandleAIEmptyContentFallsBack(t *testing.T) {
	chain := &fakeChain{content: "   "}
	svc := &Service{inventory: &staticInventory{items: defaultItems()}, chain: chain}

	resp := svc.Handle(context.Background(), "hola")

	if resp.Message == "" {
		t.Fatal("fallback response must not be empty")
	}
	if resp.Kind != chatmodel.KindText {
		t.Fatalf("expected generic invitation, got kind %q", resp.Kind)
	}
}

func TestHandleEmbedsInventoryInPrompt(t *testing.T) {
	chain := &fakeChain{content: "ok"}
	svc := &Service{inventory: &staticInventory{items: defaultItems()}, chain: chain}

	svc.Handle(context.Background(), "hola")

	for _, line := range []string{
		"CABEZAL 5020 NAT: 36 unidades disponibles",
		"SILLAR 5020 BP: 65 unidades disponibles",
	} {
		if !strings.Contains(chain.system, line) {
			t.Errorf("system prompt missing inventory line %q", line)
		}
	}
	if !strings.Contains(chain.system, "asesor humano") {
		t.Error("system prompt missing behavioral instructions")
	}
}

func TestHandleWithoutAITopicBuckets(t *testing.T) {
	svc := &Service{inventory: &staticInventory{items: defaultItems()}}

	cases := []struct {
		name        string
		input       string
		kind        chatmodel.Kind
		suggestions int
	}{
		{"products", "qué productos de aluminio manejan", chatmodel.KindProduct, 3},
		{"stock", "tienen stock de mamparas", chatmodel.KindInventory, 4},
		{"quote", "necesito una cotización para mi casa", chatmodel.KindQuote, 3},
		{"company", "cuántos años de experiencia tiene la empresa", chatmodel.KindText, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := svc.Handle(context.Background(), tc.input)

			if resp.Kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, resp.Kind)
			}
			if resp.Message == "" {
				t.Fatal("bucket response must not be empty")
			}
			if len(resp.Suggestions) != tc.suggestions {
				t.Fatalf("expected %d suggestions, got %d", tc.suggestions, len(resp.Suggestions))
			}
		})
	}
}

func TestHandleWithoutAIMatchBeatsTopicBucket(t *testing.T) {
	svc := &Service{inventory: &staticInventory{items: defaultItems()}}

	// "disponible" is a stock-bucket keyword, but the named item must
	// win so the reply carries its exact quantity.
	resp := svc.Handle(context.Background(), "tienen cabezal disponible")

	if resp.Kind != chatmodel.KindInventory {
		t.Fatalf("expected kind inventory, got %q", resp.Kind)
	}
	if !strings.Contains(resp.Message, "CABEZAL 5020 NAT: 36 unidades disponibles") {
		t.Fatalf("expected exact quantity from the item match, got %q", resp.Message)
	}
	if resp.Payload == nil {
		t.Fatal("item match should carry the matched items, not a canned bucket")
	}
}

func TestMatchTopicOrder(t *testing.T) {
	// First hit wins: "precio de productos de vidrio" carries both
	// product and quote keywords, and the product bucket is checked
	// first.
	resp, ok := matchTopic("precio de productos de vidrio")
	if !ok {
		t.Fatal("expected a bucket hit")
	}
	if resp.Kind != chatmodel.KindProduct {
		t.Fatalf("expected product bucket to win, got %q", resp.Kind)
	}

	if _, ok := matchTopic("hola"); ok {
		t.Fatal("expected no bucket for a greeting")
	}
}

func TestMatchItems(t *testing.T) {
	items := defaultItems()

	if got := matchItems(items, "tienen cabezal disponible", 0); len(got) != 3 {
		t.Fatalf("expected all 3 cabezal matches, got %d", len(got))
	}
	if got := matchItems(items, "CABEZAL", 2); len(got) != 2 {
		t.Fatalf("limit should cap matches, got %d", len(got))
	}
	if got := matchItems(items, "cabe", 0); len(got) != 3 {
		t.Fatalf("short query should match inside the first token, got %d", len(got))
	}
	if got := matchItems(items, "hola", 0); got != nil {
		t.Fatalf("expected no matches, got %+v", got)
	}
	if got := matchItems(items, "   ", 0); got != nil {
		t.Fatalf("blank query should not match, got %+v", got)
	}
}
