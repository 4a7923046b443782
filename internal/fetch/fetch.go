// Package fetch streams release assets to local files.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// NetworkError reports a transport-level download failure, carrying the
// offending URL. Downloads are single-attempt; retry policy belongs to the
// caller.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Fetcher downloads binary objects over HTTP.
type Fetcher struct {
	token  string // optional bearer token
	client *http.Client
}

// NewFetcher creates a fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// WithToken sets an optional bearer token attached to every request.
func (f *Fetcher) WithToken(token string) *Fetcher {
	f.token = token
	return f
}

// Download streams url into dest. The body is copied in bounded chunks so
// memory use is independent of artifact size. Any transport failure or
// non-2xx status is reported as a NetworkError.
func (f *Fetcher) Download(url, dest string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/octet-stream")
	req.Header.Set("User-Agent", "py-updater")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		// Drop the partial file so a truncated artifact is never mistaken
		// for a complete one.
		_ = out.Close()
		_ = os.Remove(dest)
		return &NetworkError{URL: url, Err: err}
	}
	return nil
}
