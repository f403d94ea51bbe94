// Package jw is a client for the platform's v2 management API, covering the
// webhook endpoints this application consumes.
package jw

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.jwplayer.com"

const defaultTimeout = 30 * time.Second

type Client struct {
	Webhooks WebhookService

	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a client authenticating with the site's v2 API secret.
func New(apiSecret string, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := &apiTransport{
		base: http.DefaultTransport,
		tokenSource: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: apiSecret,
		}),
	}

	c := &Client{
		baseURL:    cfg.baseURL,
		httpClient: &http.Client{Transport: transport, Timeout: cfg.timeout},
		logger:     cfg.logger,
	}

	c.Webhooks = &webhookService{client: c}

	return c
}

type clientConfig struct {
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, payload any, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := go_json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if err := go_json.NewDecoder(bytes.NewReader(body)).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w\nbody: %s", err, string(body))
		}
	}

	return nil
}

// apiTransport injects the API secret as a bearer credential. The secret is
// static, so an oauth2 static token source carries it.
type apiTransport struct {
	base        http.RoundTripper
	tokenSource oauth2.TokenSource
}

var _ http.RoundTripper = (*apiTransport)(nil)

func (t *apiTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	return t.base.RoundTrip(req)
}
