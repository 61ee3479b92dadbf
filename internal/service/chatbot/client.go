// Package chatbot is a thin client for the company's legacy chatbot
// backend. It is a separate integration surface from the AI assistant,
// used for product search, formal quotes, and company-info lookups.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/centralaluminiosdelvalle/backend/internal/config"
	"github.com/centralaluminiosdelvalle/backend/internal/model/chat"
)

// Product mirrors the catalog entries the backend returns.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	InStock     bool   `json:"inStock"`
}

// Client communicates with the legacy chatbot backend over HTTP. Every
// request carries the bearer credential and the session identifier.
// Operations never return errors; failures are classified into
// user-facing responses instead.
type Client struct {
	baseURL    string
	apiKey     string
	sessionID  string
	httpClient *http.Client
	now        func() time.Time
}

// Option adjusts a Client, mainly for tests.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithSessionID pins the session identifier instead of generating one.
func WithSessionID(id string) Option {
	return func(cl *Client) { cl.sessionID = id }
}

// WithClock overrides the time source used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

// NewClient builds a client bound to one session identifier.
func NewClient(cfg config.ChatbotConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		sessionID:  uuid.NewString(),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the identifier carried on every request.
func (c *Client) SessionID() string {
	return c.sessionID
}

// SendMessage forwards free text to the backend's conversational
// endpoint and returns its response as-is.
func (c *Client) SendMessage(ctx context.Context, message string, extra map[string]any) chat.Response {
	body := map[string]any{
		"message":   message,
		"sessionId": c.sessionID,
		"context":   extra,
		"timestamp": c.now().UTC().Format(time.RFC3339),
	}

	var out chat.Response
	if err := c.doJSON(ctx, http.MethodPost, "/chat/message", nil, body, &out); err != nil {
		log.Printf("[chatbot] send message failed: %v", err)
		return classify(err)
	}
	return out
}

// SearchProducts queries the catalog.
func (c *Client) SearchProducts(ctx context.Context, query, category string) chat.Response {
	params := url.Values{"q": {query}, "sessionId": {c.sessionID}}
	if category != "" {
		params.Set("category", category)
	}

	var payload struct {
		Products    []Product `json:"products"`
		Suggestions []string  `json:"suggestions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/products/search", params, nil, &payload); err != nil {
		log.Printf("[chatbot] product search failed: %v", err)
		return classify(err)
	}

	return chat.Response{
		Message:     fmt.Sprintf("Encontré %d productos relacionados con %q", len(payload.Products), query),
		Kind:        chat.KindProduct,
		Payload:     payload.Products,
		Suggestions: payload.Suggestions,
	}
}

// CheckInventory asks the backend for stock of one product.
func (c *Client) CheckInventory(ctx context.Context, productID string) chat.Response {
	params := url.Values{"sessionId": {c.sessionID}}

	var payload struct {
		Product           Product `json:"product"`
		Stock             int     `json:"stock"`
		Availability      string  `json:"availability"`
		EstimatedDelivery string  `json:"estimatedDelivery"`
	}
	path := "/inventory/" + url.PathEscape(productID)
	if err := c.doJSON(ctx, http.MethodGet, path, params, nil, &payload); err != nil {
		log.Printf("[chatbot] inventory check failed: %v", err)
		return classify(err)
	}

	message := fmt.Sprintf("%s: Sin stock disponible", payload.Product.Name)
	if payload.Stock > 0 {
		message = fmt.Sprintf("%s: %d unidades disponibles", payload.Product.Name, payload.Stock)
	}

	return chat.Response{
		Message: message,
		Kind:    chat.KindInventory,
		Payload: payload,
	}
}

// RequestQuote asks the backend for a preliminary quote.
func (c *Client) RequestQuote(ctx context.Context, products []string, customerInfo any) chat.Response {
	body := map[string]any{
		"products":     products,
		"customerInfo": customerInfo,
		"sessionId":    c.sessionID,
		"timestamp":    c.now().UTC().Format(time.RFC3339),
	}

	var payload struct {
		Quote any `json:"quote"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/quotes/request", nil, body, &payload); err != nil {
		log.Printf("[chatbot] quote request failed: %v", err)
		return classify(err)
	}

	return chat.Response{
		Message:     "He generado una cotización preliminar para los productos seleccionados.",
		Kind:        chat.KindQuote,
		Payload:     payload.Quote,
		Suggestions: []string{"Ver cotización completa", "Modificar productos", "Contactar asesor"},
	}
}

// GetCompanyInfo retrieves company information on a topic.
func (c *Client) GetCompanyInfo(ctx context.Context, topic string) chat.Response {
	params := url.Values{"topic": {topic}, "sessionId": {c.sessionID}}

	var payload struct {
		Message       string   `json:"message"`
		Details       any      `json:"details"`
		RelatedTopics []string `json:"relatedTopics"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/company/info", params, nil, &payload); err != nil {
		log.Printf("[chatbot] company info failed: %v", err)
		return classify(err)
	}

	return chat.Response{
		Message:     payload.Message,
		Kind:        chat.KindText,
		Payload:     payload.Details,
		Suggestions: payload.RelatedTopics,
	}
}

// doJSON performs one request/response cycle with the standard headers
// and decodes a 2xx JSON body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
