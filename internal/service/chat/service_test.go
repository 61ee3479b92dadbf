package chat_test

import (
	"context"
	"errors"
	"testing"

	model "github.com/centralaluminiosdelvalle/backend/internal/model/chat"
	chat "github.com/centralaluminiosdelvalle/backend/internal/service/chat"
)

func TestServiceSessionLifecycle(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if session.ID == "" || session.CreatedAt.IsZero() {
		t.Fatalf("session missing id or start time: %+v", session)
	}

	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID, session.ID)
	}
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := chat.NewService()

	if _, err := svc.GetSession(context.Background(), "missing"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestServiceTranscriptOrder(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	contents := []string{"hola", "¡Hola! ¿En qué puedo ayudarte?", "tienen cabezal"}
	senders := []string{"user", "bot", "user"}
	for i, content := range contents {
		if _, err := svc.SaveMessage(ctx, model.Message{
			SessionID: session.ID,
			Sender:    senders[i],
			Content:   content,
		}); err != nil {
			t.Fatalf("SaveMessage %d err: %v", i, err)
		}
	}

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(transcript))
	}
	for i, msg := range transcript {
		if msg.Content != contents[i] {
			t.Errorf("message %d out of order: got %q want %q", i, msg.Content, contents[i])
		}
		if msg.ID == "" {
			t.Errorf("message %d missing generated ID", i)
		}
		if msg.Kind != model.KindText {
			t.Errorf("message %d should default to kind text, got %q", i, msg.Kind)
		}
	}
}

func TestServiceSaveMessageUnknownSession(t *testing.T) {
	svc := chat.NewService()

	_, err := svc.SaveMessage(context.Background(), model.Message{SessionID: "missing", Sender: "user", Content: "hola"})
	if !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
