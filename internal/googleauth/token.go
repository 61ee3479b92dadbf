// Package googleauth exchanges service-account credentials for Google
// API access tokens. The inventory sheet is shared with the service
// account, so a signed JWT assertion grants read-only Sheets access
// without exposing an API key.
package googleauth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenURL is Google's OAuth 2.0 token endpoint.
	TokenURL = "https://oauth2.googleapis.com/token"
	// SheetsReadonlyScope limits issued tokens to reading spreadsheets.
	SheetsReadonlyScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

	grantType     = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLife = time.Hour
	// expirySkew triggers refresh slightly before the token actually dies.
	expirySkew = 30 * time.Second
)

// Credentials holds the fields of a service-account key file that the
// token exchange needs.
type Credentials struct {
	ClientEmail string
	PrivateKey  string
	ProjectID   string
}

// TokenSource mints and caches access tokens for one service account.
type TokenSource struct {
	creds      Credentials
	key        *rsa.PrivateKey
	tokenURL   string
	httpClient *http.Client
	now        func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// Option adjusts a TokenSource, mainly for tests.
type Option func(*TokenSource)

// WithTokenURL overrides the Google token endpoint.
func WithTokenURL(u string) Option {
	return func(ts *TokenSource) { ts.tokenURL = u }
}

// WithHTTPClient overrides the HTTP client used for the exchange.
func WithHTTPClient(c *http.Client) Option {
	return func(ts *TokenSource) { ts.httpClient = c }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(ts *TokenSource) { ts.now = now }
}

// NewTokenSource parses the PEM private key and prepares a source. It
// fails fast on malformed keys so misconfiguration surfaces at startup.
func NewTokenSource(creds Credentials, opts ...Option) (*TokenSource, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(creds.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parsing service account private key: %w", err)
	}

	ts := &TokenSource{
		creds:      creds,
		key:        key,
		tokenURL:   TokenURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts, nil
}

// Token returns a valid access token, reusing the cached one until it
// is close to expiry.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.now().Before(ts.expiry.Add(-expirySkew)) {
		return ts.token, nil
	}

	assertion, err := ts.signAssertion()
	if err != nil {
		return "", err
	}

	token, expiresIn, err := ts.exchange(ctx, assertion)
	if err != nil {
		return "", err
	}

	ts.token = token
	ts.expiry = ts.now().Add(time.Duration(expiresIn) * time.Second)
	return ts.token, nil
}

// signAssertion builds the RS256-signed JWT Google expects for the
// jwt-bearer grant.
func (ts *TokenSource) signAssertion() (string, error) {
	now := ts.now()
	claims := jwt.MapClaims{
		"iss":   ts.creds.ClientEmail,
		"scope": SheetsReadonlyScope,
		"aud":   ts.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLife).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.key)
	if err != nil {
		return "", fmt.Errorf("signing assertion: %w", err)
	}
	return signed, nil
}

func (ts *TokenSource) exchange(ctx context.Context, assertion string) (string, int, error) {
	form := url.Values{
		"grant_type": {grantType},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token request failed: status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, fmt.Errorf("decoding token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, fmt.Errorf("token response missing access_token")
	}

	return payload.AccessToken, payload.ExpiresIn, nil
}
