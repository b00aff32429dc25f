// Package clierr defines structured CLI errors with stable codes and exit codes.
package clierr

import "fmt"

// Error codes surfaced in the JSON error envelope. These are part of the
// CLI's output contract and must stay stable.
const (
	// MissingKey means no Jira issue key could be resolved from the input.
	MissingKey = "MISSING_KEY"
	// MissingCredentials means one or more required environment variables are unset.
	MissingCredentials = "MISSING_CREDENTIALS"
	// AuthFailure means Jira rejected the provided credentials.
	AuthFailure = "AUTH_FAILURE"
	// NotFound means the issue key does not resolve to an existing issue.
	NotFound = "NOT_FOUND"
	// RateLimited means Jira signaled throttling and retries were exhausted.
	RateLimited = "RATE_LIMITED"
	// NetworkFailure means the request could not be completed at the transport level.
	NetworkFailure = "NETWORK_FAILURE"
	// MalformedResponse means the remote payload did not match the expected shape.
	MalformedResponse = "MALFORMED_RESPONSE"
	// InternalError is the catch-all for unexpected failures.
	InternalError = "INTERNAL_ERROR"
)

// Error is a CLI error with a stable code and optional structured details.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured details and returns the error for chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ExitCode maps the error code to a process exit code. Resolution failures
// (missing key or credentials) and internal errors exit 2, matching the
// convention for usage errors; everything else exits 1.
func (e *Error) ExitCode() int {
	switch e.Code {
	case MissingKey, MissingCredentials, InternalError:
		return 2
	default:
		return 1
	}
}

// SilentError carries an exit code with no output. Used when the failure has
// already been reported.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}
