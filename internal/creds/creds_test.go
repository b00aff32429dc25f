package creds

import (
	"errors"
	"strings"
	"testing"

	"github.com/antopolskiy/jira-md/internal/clierr"
)

func setAll(t *testing.T) {
	t.Helper()
	t.Setenv(EnvBaseURL, "https://corp.atlassian.net/")
	t.Setenv(EnvEmail, "dev@corp.example")
	t.Setenv(EnvToken, "s3cr3t-token")
}

func TestFromEnv(t *testing.T) {
	setAll(t)

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if c.BaseURL.String() != "https://corp.atlassian.net" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", c.BaseURL)
	}
	if c.Email != "dev@corp.example" {
		t.Errorf("Email = %q", c.Email)
	}
	if c.APIToken != "s3cr3t-token" {
		t.Errorf("APIToken not preserved")
	}
}

func TestFromEnvMissingToken(t *testing.T) {
	setAll(t)
	t.Setenv(EnvToken, "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() should fail without token")
	}

	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		t.Fatalf("error is %T, want *clierr.Error", err)
	}
	if cliErr.Code != clierr.MissingCredentials {
		t.Errorf("Code = %q, want %q", cliErr.Code, clierr.MissingCredentials)
	}
	if !strings.Contains(cliErr.Message, EnvToken) {
		t.Errorf("message should name %s: %q", EnvToken, cliErr.Message)
	}
	// The other variables' values must not be echoed.
	if strings.Contains(cliErr.Message, "dev@corp.example") || strings.Contains(cliErr.Message, "corp.atlassian.net") {
		t.Errorf("message leaks credential values: %q", cliErr.Message)
	}
}

func TestFromEnvMissingAllNamesEach(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvEmail, "")
	t.Setenv(EnvToken, "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() should fail")
	}
	for _, name := range []string{EnvBaseURL, EnvEmail, EnvToken} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("message should name %s: %q", name, err.Error())
		}
	}
}

func TestFromEnvInvalidURL(t *testing.T) {
	setAll(t)
	t.Setenv(EnvBaseURL, "not a url")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() should reject a non-absolute URL")
	}
}

func TestStringRedactsToken(t *testing.T) {
	setAll(t)
	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if strings.Contains(c.String(), "s3cr3t-token") {
		t.Errorf("String() leaks token: %q", c.String())
	}
	if !strings.Contains(c.String(), "[redacted]") {
		t.Errorf("String() = %q, want redaction marker", c.String())
	}
}

func TestBrowseURL(t *testing.T) {
	setAll(t)
	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if got := c.BrowseURL("PROJ-42"); got != "https://corp.atlassian.net/browse/PROJ-42" {
		t.Errorf("BrowseURL = %q", got)
	}
}
