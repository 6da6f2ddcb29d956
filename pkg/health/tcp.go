package health

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// TCPChecker only opens a connection to the API host. It works against
// backends that reject anonymous requests.
type TCPChecker struct {
	Address string
	Timeout time.Duration
}

// NewTCPChecker derives host:port from the API base URL
func NewTCPChecker(baseURL string) (*TCPChecker, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("API URL %q has no host", baseURL)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return &TCPChecker{
		Address: net.JoinHostPort(u.Hostname(), port),
		Timeout: 5 * time.Second,
	}, nil
}

// Check dials the address
func (t *TCPChecker) Check(ctx context.Context) Result {
	start := time.Now()

	dialer := &net.Dialer{Timeout: t.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.Address)
	if err != nil {
		return Result{
			Message:   fmt.Sprintf("connection failed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}
	_ = conn.Close()

	return Result{
		Healthy:   true,
		Message:   "connected to " + t.Address,
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

func (t *TCPChecker) Type() CheckType {
	return CheckTypeTCP
}
