package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/centralaluminiosdelvalle/backend/internal/model/chat"
	"github.com/centralaluminiosdelvalle/backend/internal/service/assistant"
	chatservice "github.com/centralaluminiosdelvalle/backend/internal/service/chat"
)

// Handler exposes the chat widget endpoints.
type Handler struct {
	chatSvc   *chatservice.Service
	assistant *assistant.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service, assistantSvc *assistant.Service) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		assistant: assistantSvc,
	}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/session", h.handleCreateSession)
	r.Post("/chat/message", h.handleMessage)
	r.Get("/chat/transcript/{sessionID}", h.handleTranscript)
}

// handleCreateSession provisions a session and returns the assistant's
// opening line so the widget can show it immediately.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"session": session,
		"welcome": assistant.WelcomeMessage,
	})
}

// handleMessage runs one chat turn: store the user message, ask the
// assistant, store and return the bot reply.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), payload.SessionID); err != nil {
		respondSaveError(w, err)
		return
	}

	if _, err := h.chatSvc.SaveMessage(r.Context(), chat.Message{
		SessionID: payload.SessionID,
		Sender:    "user",
		Content:   payload.Message,
		Kind:      chat.KindText,
	}); err != nil {
		respondSaveError(w, err)
		return
	}

	response := h.assistant.Handle(r.Context(), payload.Message)

	botMessage, err := h.chatSvc.SaveMessage(r.Context(), chat.Message{
		SessionID: payload.SessionID,
		Sender:    "bot",
		Content:   response.Message,
		Kind:      response.Kind,
		Payload:   response.Payload,
	})
	if err != nil {
		respondSaveError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"messageId": botMessage.ID,
		"response":  response,
	})
}

// handleTranscript returns the stored turns for a session.
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		respondSaveError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func respondSaveError(w http.ResponseWriter, err error) {
	if errors.Is(err, chatservice.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
