package jira

import (
	"context"
	"errors"
	"net/http"

	"github.com/antopolskiy/jira-md/internal/clierr"
)

// statusError maps an HTTP error status to the CLI failure taxonomy. The
// response body is deliberately not included in the message.
func statusError(status int, path string) *clierr.Error {
	var err *clierr.Error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		err = clierr.Newf(clierr.AuthFailure,
			"Jira rejected the credentials (HTTP %d) — check %s", status, "ATLASSIAN_EMAIL and ATLASSIAN_API_TOKEN")
	case status == http.StatusNotFound:
		err = clierr.Newf(clierr.NotFound, "resource not found (HTTP 404): %s", path)
	case status == http.StatusTooManyRequests:
		err = clierr.New(clierr.RateLimited, "Jira is throttling requests (HTTP 429)")
	case status >= 500:
		err = clierr.Newf(clierr.NetworkFailure, "Jira server error (HTTP %d)", status)
	default:
		err = clierr.Newf(clierr.InternalError, "unexpected Jira response (HTTP %d) for %s", status, path)
	}
	return err.WithDetails(map[string]any{"status": status})
}

// transportError wraps a transport-level failure, including timeouts.
func transportError(err error) *clierr.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return clierr.New(clierr.NetworkFailure, "request timed out")
	}
	return clierr.Newf(clierr.NetworkFailure, "request failed: %v", err)
}

// malformed wraps a payload that does not match the expected shape.
func malformed(err error) *clierr.Error {
	return clierr.Newf(clierr.MalformedResponse, "unexpected Jira payload: %v", err)
}

// wrapInternal wraps a local failure that is neither transport nor remote.
func wrapInternal(err error) *clierr.Error {
	return clierr.Newf(clierr.InternalError, "%v", err)
}

// isRetryable reports whether an error may be retried: throttling and
// transport failures only. Resolution and auth failures never retry.
func isRetryable(err error) bool {
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		return false
	}
	return cliErr.Code == clierr.RateLimited || cliErr.Code == clierr.NetworkFailure
}

// statusOf returns the HTTP status recorded on a client error, or 0.
func statusOf(err error) int {
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		return 0
	}
	status, _ := cliErr.Details["status"].(int)
	return status
}
