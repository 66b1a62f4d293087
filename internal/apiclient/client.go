package apiclient

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

	"github.com/segmentio/ksuid"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/session"
	"go.uber.org/zap"
)

// BasePath is the API prefix every endpoint lives under
const BasePath = "/api/v1"

// DefaultTimeout bounds every request
const DefaultTimeout = 30 * time.Second

// Client performs JSON requests against the backend and manages the bearer token
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     session.TokenStore
	logger     *zap.Logger
}

// New creates a client for the backend at baseURL (without the /api/v1 suffix)
func New(baseURL string, timeout time.Duration, tokens session.TokenStore, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + BasePath,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// Tokens exposes the token store the client authenticates with
func (c *Client) Tokens() session.TokenStore {
	return c.tokens
}

// Get issues a GET request and returns the raw response body
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body and returns the raw response body
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Do sends one request. It never retries: HTTP failures come back as *APIError,
// transport failures and timeouts as *NetworkError. A 401 deletes the stored token.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := ksuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("duration", time.Since(startTime)),
		)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(startTime)),
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("request completed", fields...)
		return data, nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    extractMessage(resp.StatusCode, data),
		Path:       path,
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("request unauthorized, clearing stored token", fields...)
		if err := c.tokens.ClearToken(ctx); err != nil {
			c.logger.Error("failed to clear token after 401", zap.Error(err))
		}
	} else if resp.StatusCode >= 500 {
		c.logger.Error("request completed with server error", append(fields, zap.String("message", apiErr.Message))...)
	} else {
		c.logger.Warn("request completed with client error", append(fields, zap.String("message", apiErr.Message))...)
	}

	return nil, apiErr
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to load auth token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}
