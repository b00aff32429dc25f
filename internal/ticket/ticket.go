// Package ticket assembles the JSON documents the CLI emits: issue
// descriptions, comment lists, and assigned-issue summaries. It is strictly
// read-only; nothing here mutates remote state.
package ticket

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/antopolskiy/jira-md/internal/adf"
	"github.com/antopolskiy/jira-md/internal/config"
	"github.com/antopolskiy/jira-md/internal/creds"
	"github.com/antopolskiy/jira-md/internal/jira"
)

// Service runs the read operations against one Jira site.
type Service struct {
	client *jira.Client
	creds  *creds.Credentials
	cfg    *config.Config
	logger *slog.Logger
}

// NewService returns a Service bound to the given client and credentials.
func NewService(client *jira.Client, crd *creds.Credentials, cfg *config.Config, logger *slog.Logger) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{client: client, creds: crd, cfg: cfg, logger: logger}
}

// richText resolves a rich-text field value with a two-branch preference:
// the rendered, human-readable form first (Markdown from an ADF document,
// the server's rendered view, or a plain-string value), and otherwise the
// raw structured document unmodified.
func richText(issue *jira.Issue, fieldID string) any {
	raw := issue.Fields[fieldID]
	if isNull(raw) {
		if rendered := renderedString(issue, fieldID); rendered != "" {
			return rendered
		}
		return nil
	}

	if md, ok := adf.Render(raw); ok {
		return md
	}
	if rendered := renderedString(issue, fieldID); rendered != "" {
		return rendered
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return raw
}

// renderBody resolves a standalone rich-text value (a comment body) with the
// same rendered-first, raw-fallback preference as richText.
func renderBody(raw json.RawMessage) any {
	if isNull(raw) {
		return nil
	}
	if md, ok := adf.Render(raw); ok {
		return md
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return raw
}

// renderedString returns the server-rendered view of a field when present.
func renderedString(issue *jira.Issue, fieldID string) string {
	raw := issue.RenderedFields[fieldID]
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// fieldString decodes a plain string field, returning "" on absence.
func fieldString(issue *jira.Issue, fieldID string) string {
	raw := issue.Fields[fieldID]
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// fieldName decodes the name of an object-valued field such as status,
// priority, issuetype, or project.
func fieldName(issue *jira.Issue, fieldID string) string {
	raw := issue.Fields[fieldID]
	if isNull(raw) {
		return ""
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return obj.Name
}

// fieldLabels decodes the labels field, returning an empty (non-nil) slice
// on absence so the JSON output always carries an array.
func fieldLabels(issue *jira.Issue) []string {
	labels := []string{}
	raw := issue.Fields["labels"]
	if isNull(raw) {
		return labels
	}
	if err := json.Unmarshal(raw, &labels); err != nil {
		return []string{}
	}
	return labels
}
