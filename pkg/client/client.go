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

	"github.com/cuemby/clusterview/pkg/log"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Config configures a Client
type Config struct {
	// BaseURL of the orchestrator API, e.g. http://localhost:8080/api/v1
	BaseURL string
	// Token is sent as a bearer token when set
	Token string
	// Timeout bounds each request (default: 10s)
	Timeout time.Duration
	// HTTPClient overrides the default HTTP client
	HTTPClient *http.Client
}

// Client issues one HTTP call per fetch and returns typed payloads. It keeps no
// state between calls and is safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	token  string
	logger zerolog.Logger
}

// NewClient creates a new API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme %q", base.Scheme)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:   base,
		http:   httpClient,
		token:  cfg.Token,
		logger: log.WithComponent("client"),
	}, nil
}

// do performs one request and returns the body of a 2xx response. A 2xx body
// shaped as an error envelope is returned as a *LogicalError.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", RequestID(ctx)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: snippet}
	}

	if msg, failed := envelopeError(data); failed {
		return nil, &LogicalError{Method: method, Path: path, Message: msg}
	}
	return data, nil
}

// envelopeError reports whether data is an object whose "error" field is true
func envelopeError(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}
	var probe struct {
		Error   *bool  `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return "", false
	}
	if probe.Error == nil || !*probe.Error {
		return "", false
	}
	if probe.Message == "" {
		probe.Message = "request failed"
	}
	return probe.Message, true
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(path, data, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	data, err := c.do(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(path, data, out)
}

// remove issues a DELETE and returns the ID echoed by the envelope
func (c *Client) remove(ctx context.Context, path string) (string, error) {
	data, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return "", err
	}
	var env struct {
		ID string `json:"id"`
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			return "", fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}
	return env.ID, nil
}

func decode(path string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// getKeyed fetches a JSON object keyed by resource name and also returns the
// names in the order the backend sent them.
func getKeyed[T any](ctx context.Context, c *Client, path string) (map[string]T, []string, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}
	out := map[string]T{}
	if err := decode(path, data, &out); err != nil {
		return nil, nil, err
	}
	order, err := objectKeys(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return out, order, nil
}

// objectKeys returns the top-level keys of a JSON object in document order
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func escape(s string) string {
	return url.PathEscape(s)
}
