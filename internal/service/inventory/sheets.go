package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/centralaluminiosdelvalle/backend/internal/config"
	"github.com/centralaluminiosdelvalle/backend/internal/googleauth"
	model "github.com/centralaluminiosdelvalle/backend/internal/model/inventory"
)

const (
	sheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

	// The inventory lives on one named sheet: product names in column A,
	// quantities in column B, data starting at row 3.
	sheetName  = "INVENTARIO"
	sheetRange = sheetName + "!A3:B300"
	firstRow   = 3

	// sentinelLabel marks the section header row repeated inside the
	// data range; it is never a product.
	sentinelLabel = "SISTEMA 5020"
)

// valuesResponse mirrors the JSON returned by the Sheets values GET.
type valuesResponse struct {
	Values [][]string `json:"values"`
}

// SheetsSource fetches inventory rows from Google Sheets. It fails
// closed: every call returns a usable snapshot, substituting the
// fixture dataset when live retrieval is not possible.
type SheetsSource struct {
	cfg        config.SheetsConfig
	baseURL    string
	httpClient *http.Client
	tokens     *googleauth.TokenSource
	now        func() time.Time
}

// SheetsOption adjusts a SheetsSource, mainly for tests.
type SheetsOption func(*SheetsSource)

// WithBaseURL overrides the Sheets API endpoint.
func WithBaseURL(u string) SheetsOption {
	return func(s *SheetsSource) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) SheetsOption {
	return func(s *SheetsSource) { s.httpClient = c }
}

// WithClock overrides the time source stamped onto snapshots.
func WithClock(now func() time.Time) SheetsOption {
	return func(s *SheetsSource) { s.now = now }
}

// WithTokenSource supplies a service-account token source. When set it
// takes precedence over the query-string API key.
func WithTokenSource(ts *googleauth.TokenSource) SheetsOption {
	return func(s *SheetsSource) { s.tokens = ts }
}

// NewSheetsSource builds the adapter.
func NewSheetsSource(cfg config.SheetsConfig, opts ...SheetsOption) *SheetsSource {
	s := &SheetsSource{
		cfg:        cfg,
		baseURL:    sheetsBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchInventory retrieves and parses the live sheet, or returns the
// fixture snapshot on any failure. It never returns an error.
func (s *SheetsSource) FetchInventory(ctx context.Context) model.Snapshot {
	if !s.cfg.Enabled() {
		log.Printf("[inventory] no spreadsheet credential configured, serving fixture data")
		return s.fixtureSnapshot()
	}

	values, err := s.fetchValues(ctx)
	if err != nil {
		log.Printf("[inventory] live fetch failed (%s): %v", classifyFetchError(err), err)
		return s.fixtureSnapshot()
	}

	items := parseRows(values)
	log.Printf("[inventory] parsed %d products from %d sheet rows", len(items), len(values))
	return model.Snapshot{Items: items, LastUpdated: s.now()}
}

func (s *SheetsSource) fixtureSnapshot() model.Snapshot {
	return model.Snapshot{Items: fixtureItems(), LastUpdated: s.now()}
}

func (s *SheetsSource) fetchValues(ctx context.Context) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", s.baseURL, url.PathEscape(s.cfg.SpreadsheetID), url.PathEscape(sheetRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating sheets request: %w", err)
	}

	if err := s.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting sheet values: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{Status: resp.StatusCode}
	}

	var payload valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding sheet values: %w", err)
	}
	if payload.Values == nil {
		return nil, fmt.Errorf("sheet response carried no values")
	}

	return payload.Values, nil
}

// authorize attaches either a service-account bearer token or the API
// key. A failed token exchange falls back to the key when present.
func (s *SheetsSource) authorize(ctx context.Context, req *http.Request) error {
	if s.tokens != nil {
		token, err := s.tokens.Token(ctx)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			return nil
		}
		log.Printf("[inventory] service account token exchange failed: %v", err)
		if s.cfg.APIKey == "" {
			return fmt.Errorf("obtaining access token: %w", err)
		}
	}

	q := req.URL.Query()
	q.Set("key", s.cfg.APIKey)
	req.URL.RawQuery = q.Encode()
	return nil
}

// parseRows turns raw sheet rows into items. Rows with an empty name or
// the sentinel label are dropped; unparseable quantities become 0. Row
// numbers are 1-based sheet rows, offset by the range start.
func parseRows(values [][]string) []model.Item {
	items := make([]model.Item, 0, len(values))
	for i, row := range values {
		if len(row) == 0 {
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" || name == sentinelLabel {
			continue
		}

		quantity := 0
		if len(row) > 1 {
			if parsed, err := strconv.Atoi(strings.TrimSpace(row[1])); err == nil && parsed > 0 {
				quantity = parsed
			}
		}

		items = append(items, model.Item{
			Name:     name,
			Quantity: quantity,
			Row:      i + firstRow,
		})
	}
	return items
}

// statusError carries a non-2xx response code through the error chain.
type statusError struct {
	Status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// classifyFetchError buckets a failed fetch for the log line.
func classifyFetchError(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		switch se.Status {
		case http.StatusForbidden:
			return "permission-denied"
		case http.StatusBadRequest:
			return "bad-request"
		}
	}
	return "other"
}
