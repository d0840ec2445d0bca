package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"newspulse/internal/ports"
)

// maxBodyBytes bounds a single page read; article pages are far smaller.
const maxBodyBytes = 8 << 20

// HTTPFetcher retrieves pages sequentially with a fixed User-Agent.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ ports.Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher wires an HTTP client; a nil client gets a sane timeout.
func NewHTTPFetcher(client *http.Client, timeout time.Duration, userAgent string, logger *slog.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{client: client, userAgent: userAgent, logger: logger}
}

// Fetch GETs one URL and returns the body. Non-2xx statuses are errors;
// the collector decides whether a failure is fatal (it never is).
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	if f.logger != nil {
		f.logger.Debug("GET", "url", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
