package clierr_test

import (
	"errors"
	"testing"

	"github.com/antopolskiy/jira-md/internal/clierr"
)

func TestErrorImplementsError(t *testing.T) {
	var err error = clierr.New(clierr.NotFound, "issue not found: PROJ-999")
	if err.Error() != "issue not found: PROJ-999" {
		t.Errorf("Error() = %q, want %q", err.Error(), "issue not found: PROJ-999")
	}
}

func TestErrorsAs(t *testing.T) {
	err := clierr.New(clierr.AuthFailure, "credentials rejected")
	var wrapped error = err

	var target *clierr.Error
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed to unwrap *clierr.Error")
	}
	if target.Code != clierr.AuthFailure {
		t.Errorf("Code = %q, want %q", target.Code, clierr.AuthFailure)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{clierr.NotFound, 1},
		{clierr.AuthFailure, 1},
		{clierr.RateLimited, 1},
		{clierr.NetworkFailure, 1},
		{clierr.MalformedResponse, 1},
		{clierr.MissingKey, 2},
		{clierr.MissingCredentials, 2},
		{clierr.InternalError, 2},
	}
	for _, tt := range tests {
		err := clierr.New(tt.code, "msg")
		if got := err.ExitCode(); got != tt.want {
			t.Errorf("ExitCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestNewf(t *testing.T) {
	err := clierr.Newf(clierr.MissingKey, "no issue key in %q", "not-a-key")
	if err.Message != `no issue key in "not-a-key"` {
		t.Errorf("Message = %q, want %q", err.Message, `no issue key in "not-a-key"`)
	}
}

func TestWithDetails(t *testing.T) {
	err := clierr.New(clierr.RateLimited, "throttled").
		WithDetails(map[string]any{"status": 429})
	if err.Details == nil {
		t.Fatal("Details is nil after WithDetails")
	}
	if err.Details["status"] != 429 {
		t.Errorf("Details[status] = %v, want 429", err.Details["status"])
	}
}

func TestSilentError(t *testing.T) {
	err := &clierr.SilentError{Code: 1}
	if err.Error() != "exit 1" {
		t.Errorf("Error() = %q, want %q", err.Error(), "exit 1")
	}

	var target *clierr.SilentError
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed to unwrap *SilentError")
	}
}
