package ticket

import (
	"context"
	"encoding/json"
	"strings"
)

// acceptanceCriteriaField is the display name of the custom field holding
// acceptance criteria. The field id differs per Jira site, so it is
// discovered through the field catalog on every description fetch.
const acceptanceCriteriaField = "acceptance criteria"

// Parent is the parent-issue reference in a description document.
type Parent struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Description is the JSON document emitted for a description fetch.
type Description struct {
	Key                string   `json:"key"`
	URL                string   `json:"url"`
	Description        any      `json:"description_markdown"`
	AcceptanceCriteria any      `json:"acceptance_criteria_markdown"`
	Labels             []string `json:"labels"`
	Parent             *Parent  `json:"parent"`
	Status             string   `json:"status"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// Description fetches the description document for one issue.
func (s *Service) Description(ctx context.Context, key string) (*Description, error) {
	acceptanceID, err := s.findAcceptanceCriteriaField(ctx)
	if err != nil {
		return nil, err
	}

	fields := []string{"description", "labels", "parent", "status", "created", "updated"}
	if acceptanceID != "" {
		fields = append(fields, acceptanceID)
	}

	issue, err := s.client.Issue(ctx, key, fields, true)
	if err != nil {
		return nil, err
	}

	doc := &Description{
		Key:         issue.Key,
		URL:         s.creds.BrowseURL(key),
		Description: richText(issue, "description"),
		Labels:      fieldLabels(issue),
		Parent:      s.parentOf(issue.Fields["parent"]),
		Status:      fieldName(issue, "status"),
		CreatedAt:   fieldString(issue, "created"),
		UpdatedAt:   fieldString(issue, "updated"),
	}
	if acceptanceID != "" {
		doc.AcceptanceCriteria = richText(issue, acceptanceID)
	}
	return doc, nil
}

// findAcceptanceCriteriaField scans the field catalog for the acceptance
// criteria custom field: an exact name match wins, then a substring match.
// Returns "" when the site has no such field.
func (s *Service) findAcceptanceCriteriaField(ctx context.Context) (string, error) {
	fields, err := s.client.Fields(ctx)
	if err != nil {
		return "", err
	}

	for _, f := range fields {
		if strings.EqualFold(strings.TrimSpace(f.Name), acceptanceCriteriaField) {
			return f.ID, nil
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Name), acceptanceCriteriaField) {
			return f.ID, nil
		}
	}
	s.logger.Debug("no acceptance criteria field on this site")
	return "", nil
}

// parentOf decodes the parent field into a reference, or nil when absent.
func (s *Service) parentOf(raw json.RawMessage) *Parent {
	if isNull(raw) {
		return nil
	}
	var parent struct {
		Key    string `json:"key"`
		Fields struct {
			Summary string `json:"summary"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(raw, &parent); err != nil || parent.Key == "" {
		return nil
	}
	return &Parent{
		Key:   parent.Key,
		Title: parent.Fields.Summary,
		URL:   s.creds.BrowseURL(parent.Key),
	}
}
