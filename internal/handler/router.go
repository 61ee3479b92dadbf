package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/centralaluminiosdelvalle/backend/internal/handler/chat"
	inventoryHandler "github.com/centralaluminiosdelvalle/backend/internal/handler/inventory"
	legacyHandler "github.com/centralaluminiosdelvalle/backend/internal/handler/legacy"
	middlewarePkg "github.com/centralaluminiosdelvalle/backend/internal/middleware"
	"github.com/centralaluminiosdelvalle/backend/internal/service/assistant"
	chatService "github.com/centralaluminiosdelvalle/backend/internal/service/chat"
	"github.com/centralaluminiosdelvalle/backend/internal/service/chatbot"
	inventoryService "github.com/centralaluminiosdelvalle/backend/internal/service/inventory"
	"github.com/centralaluminiosdelvalle/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. legacyClient may be
// nil when the legacy chatbot backend is not configured.
func NewRouter(chatSvc *chatService.Service, assistantSvc *assistant.Service, inventorySvc *inventoryService.Service, legacyClient *chatbot.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(chatSvc, assistantSvc).RegisterRoutes(api)
		inventoryHandler.New(inventorySvc).RegisterRoutes(api)

		if legacyClient != nil {
			legacyHandler.New(legacyClient).RegisterRoutes(api)
		}

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
