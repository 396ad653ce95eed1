// Package bridge fetches bank movements from the Bridge aggregation API.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	"github.com/SscSPs/money_forecast/internal/middleware"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	transactionsPath = "/v2/transactions"
	pageLimit        = 500
	maxPages         = 100
	dateLayout       = "2006-01-02"
)

// ErrNotConfigured is returned when client credentials are missing.
var ErrNotConfigured = errors.New("bridge client credentials not configured")

// Config configures the client.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string // never logged
	Version      string // sent as the Bridge-Version header
	Timeout      time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client reads transactions of the user's connected bank accounts.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu     sync.Mutex
	tokens map[string]oauth2.TokenSource // per user
}

// NewClient creates a Bridge client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient, tokens: make(map[string]oauth2.TokenSource)}, nil
}

var _ portsrepo.BankTransactionReader = (*Client)(nil)

// tokenSource returns the cached client-credentials token source of userID. Tokens are
// scoped to the user through the user_uuid endpoint parameter.
func (c *Client) tokenSource(userID string) oauth2.TokenSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.tokens[userID]; ok {
		return ts
	}
	cc := clientcredentials.Config{
		ClientID:       c.cfg.ClientID,
		ClientSecret:   c.cfg.ClientSecret,
		TokenURL:       c.cfg.TokenURL,
		EndpointParams: url.Values{"user_uuid": {userID}},
		AuthStyle:      oauth2.AuthStyleInParams,
	}
	// the token source outlives the request, so it must not hold the request context
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
	ts := cc.TokenSource(tokenCtx)
	c.tokens[userID] = ts
	return ts
}

type transactionResource struct {
	ID               json.Number     `json:"id"`
	CleanDescription string          `json:"clean_description"`
	BankDescription  string          `json:"bank_description"`
	Amount           decimal.Decimal `json:"amount"`
	Date             string          `json:"date"`
	AccountID        json.Number     `json:"account_id"`
	IsDeleted        bool            `json:"is_deleted"`
}

type transactionsPage struct {
	Resources  []transactionResource `json:"resources"`
	Pagination struct {
		NextURI string `json:"next_uri"`
	} `json:"pagination"`
}

// FetchTransactions walks every page of movements dated on or after since.
// Deleted movements and records with an unreadable date are skipped.
func (c *Client) FetchTransactions(ctx context.Context, userID string, since time.Time) ([]domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	query := url.Values{
		"since": {since.Format(dateLayout)},
		"limit": {fmt.Sprint(pageLimit)},
	}
	next := transactionsPath + "?" + query.Encode()

	var out []domain.BankTransaction
	for page := 0; next != ""; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("bridge pagination exceeded %d pages", maxPages)
		}
		var body transactionsPage
		if err := c.get(ctx, userID, next, &body); err != nil {
			return nil, err
		}
		for _, r := range body.Resources {
			if r.IsDeleted {
				continue
			}
			date, err := time.Parse(dateLayout, r.Date)
			if err != nil {
				logger.Debug("Skipping bridge transaction with unreadable date",
					slog.String("bridge_id", r.ID.String()),
					slog.String("date", r.Date))
				continue
			}
			desc := r.CleanDescription
			if desc == "" {
				desc = r.BankDescription
			}
			out = append(out, domain.BankTransaction{
				ID:          r.ID.String(),
				Date:        date,
				Amount:      r.Amount,
				Description: desc,
				AccountID:   r.AccountID.String(),
			})
		}
		next = body.Pagination.NextURI
	}

	logger.Debug("Fetched bridge transactions",
		slog.String("user_id", userID),
		slog.Int("count", len(out)))
	return out, nil
}

func (c *Client) get(ctx context.Context, userID, pathAndQuery string, dst any) error {
	token, err := c.tokenSource(userID).Token()
	if err != nil {
		return fmt.Errorf("failed to obtain bridge token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+pathAndQuery, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Bridge-Version", c.cfg.Version)
	req.Header.Set("Client-Id", c.cfg.ClientID)
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode bridge response: %w", err)
	}
	return nil
}

// APIError is a non-200 answer from Bridge.
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bridge API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("bridge API error: status %d: %s: %s", e.StatusCode, e.Type, e.Message)
}

func parseError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}
