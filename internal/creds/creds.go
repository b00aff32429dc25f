// Package creds reads Atlassian credentials from the process environment.
package creds

import (
	"net/url"
	"os"
	"strings"

	"github.com/antopolskiy/jira-md/internal/clierr"
)

// Environment variable names. The token VALUE must never appear in output,
// logs, or error messages; only these names may be echoed.
const (
	EnvBaseURL = "ATLASSIAN_URL"
	EnvEmail   = "ATLASSIAN_EMAIL"
	EnvToken   = "ATLASSIAN_API_TOKEN"
)

// Credentials holds the immutable authentication triple for one invocation.
type Credentials struct {
	BaseURL  *url.URL
	Email    string
	APIToken string
}

// FromEnv reads and validates the three required environment variables.
// It fails with MissingCredentials naming every absent variable, and never
// includes any variable's value in the message.
func FromEnv() (*Credentials, error) {
	rawURL := strings.TrimSpace(os.Getenv(EnvBaseURL))
	email := strings.TrimSpace(os.Getenv(EnvEmail))
	token := strings.TrimSpace(os.Getenv(EnvToken))

	var missing []string
	if rawURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	if email == "" {
		missing = append(missing, EnvEmail)
	}
	if token == "" {
		missing = append(missing, EnvToken)
	}
	if len(missing) > 0 {
		return nil, clierr.Newf(clierr.MissingCredentials,
			"missing environment variable(s): %s — set them to your Jira site URL, account email, and API token",
			strings.Join(missing, ", ")).
			WithDetails(map[string]any{"missing": missing})
	}

	base, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, clierr.Newf(clierr.MissingCredentials,
			"%s is not a valid absolute URL", EnvBaseURL)
	}

	return &Credentials{BaseURL: base, Email: email, APIToken: token}, nil
}

// String implements fmt.Stringer with the token redacted, so accidental
// logging of the struct can never leak the secret.
func (c *Credentials) String() string {
	return c.BaseURL.String() + " " + c.Email + " [redacted]"
}

// BrowseURL returns the human-facing URL for an issue key.
func (c *Credentials) BrowseURL(key string) string {
	return c.BaseURL.String() + "/browse/" + key
}
