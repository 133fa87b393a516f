package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendlens/trendlens/pkg/domain"
)

// TokenProvider supplies the bearer token attached to outgoing requests.
// An empty token means the request is sent unauthenticated.
type TokenProvider interface {
	Token() string
}

// StaticToken is a fixed-token TokenProvider, mainly for tests and
// one-shot commands.
type StaticToken string

// Token returns the static token value.
func (s StaticToken) Token() string { return string(s) }

// TokenFunc adapts a function to a TokenProvider, which lets the caller
// wire the client to a session manager that is constructed afterwards.
type TokenFunc func() string

// Token calls f.
func (f TokenFunc) Token() string { return f() }

// ForecastRequest is the payload for the forecast endpoint.
// PromotionDates may be empty; the server treats them as known demand
// spikes the model should account for.
type ForecastRequest struct {
	Keyword        string        `json:"keyword"`
	Model          string        `json:"model"`
	PromotionDates []domain.Date `json:"promotion_dates"`
}

// Client is the TrendLens API client.
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the request-trace logger. The default logger is
// disabled so the TUI keeps sole ownership of the terminal.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a new API client. tokens may be nil for a client that
// never authenticates.
func New(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TokenResponse is the credential-exchange response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a session token. The auth endpoint
// expects form-encoded username/password rather than JSON.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("client.Login: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok TokenResponse
	if err := c.send(req, &tok); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &tok, nil
}

// Register creates a new account. It does not log the account in.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := domain.Credentials{Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", body, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// InterestOverTime fetches the historical interest series for a keyword.
// Points arrive in ascending date order.
func (c *Client) InterestOverTime(ctx context.Context, keyword string) ([]domain.TrendPoint, error) {
	var points []domain.TrendPoint
	body := map[string]string{"keyword": keyword}
	if err := c.doRequest(ctx, http.MethodPost, "/trends/interest-over-time", body, &points); err != nil {
		return nil, fmt.Errorf("client.InterestOverTime: %w", err)
	}
	return points, nil
}

// Forecast fetches predicted interest points for a keyword. The returned
// dates follow the historical range; the client does not verify that.
func (c *Client) Forecast(ctx context.Context, req ForecastRequest) ([]domain.ForecastPoint, error) {
	if req.PromotionDates == nil {
		req.PromotionDates = []domain.Date{}
	}
	var points []domain.ForecastPoint
	if err := c.doRequest(ctx, http.MethodPost, "/trends/forecast", req, &points); err != nil {
		return nil, fmt.Errorf("client.Forecast: %w", err)
	}
	return points, nil
}

// RelatedQueries fetches the top and rising query rankings for a keyword.
// Each entry is stamped with the ranking it came from.
func (c *Client) RelatedQueries(ctx context.Context, keyword string) (*domain.RelatedQueries, error) {
	var rq domain.RelatedQueries
	body := map[string]string{"keyword": keyword}
	if err := c.doRequest(ctx, http.MethodPost, "/trends/related-queries", body, &rq); err != nil {
		return nil, fmt.Errorf("client.RelatedQueries: %w", err)
	}
	for i := range rq.Top {
		rq.Top[i].Kind = domain.QueryTop
	}
	for i := range rq.Rising {
		rq.Rising[i].Kind = domain.QueryRising
	}
	return &rq, nil
}

// DashboardKPIs fetches the dashboard summary record.
func (c *Client) DashboardKPIs(ctx context.Context) (*domain.KPIReport, error) {
	var report domain.KPIReport
	if err := c.doRequest(ctx, http.MethodGet, "/trends/dashboard-kpis", nil, &report); err != nil {
		return nil, fmt.Errorf("client.DashboardKPIs: %w", err)
	}
	return &report, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send attaches the bearer token, executes the request and decodes the
// response. Error bodies use the API's {"detail": ...} shape.
func (c *Client) send(req *http.Request, out any) error {
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Detail: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Detail != "" {
			return &APIError{StatusCode: resp.StatusCode, Detail: apiErr.Detail}
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
