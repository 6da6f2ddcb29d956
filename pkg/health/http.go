package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPChecker issues a GET against an API endpoint. Any status below
// MaxStatus counts as reachable.
type HTTPChecker struct {
	URL       string
	Token     string
	MaxStatus int
	Client    *http.Client
}

// NewHTTPChecker probes path relative to the API base URL
func NewHTTPChecker(baseURL, path, token string) *HTTPChecker {
	return &HTTPChecker{
		URL:       strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"),
		Token:     token,
		MaxStatus: http.StatusBadRequest,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Check performs the request
func (h *HTTPChecker) Check(ctx context.Context) Result {
	start := time.Now()
	fail := func(format string, args ...any) Result {
		return Result{
			Message:   fmt.Sprintf(format, args...),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return fail("failed to create request: %v", err)
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return fail("request failed: %v", err)
	}
	defer resp.Body.Close()

	message := fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	if resp.StatusCode >= h.MaxStatus {
		return fail("%s", message)
	}
	return Result{
		Healthy:   true,
		Message:   message,
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

func (h *HTTPChecker) Type() CheckType {
	return CheckTypeHTTP
}
