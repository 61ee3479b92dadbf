package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	invservice "github.com/centralaluminiosdelvalle/backend/internal/service/inventory"
	"github.com/centralaluminiosdelvalle/backend/pkg/utils"
)

// Handler exposes the inventory viewer endpoints.
type Handler struct {
	inventory *invservice.Service
}

// New creates the inventory handler.
func New(inventorySvc *invservice.Service) *Handler {
	return &Handler{inventory: inventorySvc}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/inventory", h.handleGet)
	r.Post("/inventory/refresh", h.handleRefresh)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.inventory.GetInventoryData(r.Context()))
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.inventory.RefreshInventory(r.Context()))
}
