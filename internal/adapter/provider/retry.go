// Package provider holds the shared HTTP plumbing of the third-party lookup clients.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// RetryDelay is the pause before the single retry.
var RetryDelay = 500 * time.Millisecond

// DoWithRetry executes req, retrying once on 5xx or network errors.
// The request must not carry a body.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, log *slog.Logger) (*http.Response, error) {
	resp, err := client.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	log.WarnContext(ctx, "provider retry", slog.String("url", req.URL.Redacted()), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(RetryDelay):
	}

	return client.Do(req)
}
