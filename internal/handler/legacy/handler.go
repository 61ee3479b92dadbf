package legacy

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/centralaluminiosdelvalle/backend/internal/service/chatbot"
	"github.com/centralaluminiosdelvalle/backend/pkg/utils"
)

// Handler proxies the non-AI queries (catalog search, quotes, company
// info) to the legacy chatbot backend. The responses are already
// user-facing; transport failures arrive pre-classified.
type Handler struct {
	client *chatbot.Client
}

// New creates the legacy proxy handler.
func New(client *chatbot.Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers the legacy-backed routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/products/search", h.handleSearch)
	r.Get("/products/{productID}/stock", h.handleStock)
	r.Post("/quotes/request", h.handleQuote)
	r.Get("/company/info", h.handleCompanyInfo)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		utils.RespondError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	category := r.URL.Query().Get("category")
	utils.RespondJSON(w, http.StatusOK, h.client.SearchProducts(r.Context(), query, category))
}

func (h *Handler) handleStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	utils.RespondJSON(w, http.StatusOK, h.client.CheckInventory(r.Context(), productID))
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Products     []string `json:"products"`
		CustomerInfo any      `json:"customerInfo"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Products) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "products list is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.client.RequestQuote(r.Context(), payload.Products, payload.CustomerInfo))
}

func (h *Handler) handleCompanyInfo(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		utils.RespondError(w, http.StatusBadRequest, "topic query parameter is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.client.GetCompanyInfo(r.Context(), topic))
}
