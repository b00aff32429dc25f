package ticket

import (
	"context"
	"slices"
	"strings"
)

// assignedJQL selects the authenticated account's issues, most recently
// updated first.
const assignedJQL = "assignee = currentUser() order by updated DESC"

// AssignedOptions controls the assigned-issue query.
type AssignedOptions struct {
	// Limit caps the number of returned summaries. Zero means 100.
	Limit int
	// AllStatuses includes issues in the configured excluded statuses
	// (normally Done, Cancelled, Closed).
	AllStatuses bool
}

// Summary is one entry in the assigned-issue document.
type Summary struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Status    string   `json:"status"`
	Type      string   `json:"type,omitempty"`
	Project   string   `json:"project,omitempty"`
	Priority  string   `json:"priority,omitempty"`
	Labels    []string `json:"labels"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// Assigned fetches issues assigned to the authenticated user. It pages
// through the search endpoint until the limit is satisfied or results are
// exhausted, and never returns more than the limit.
func (s *Service) Assigned(ctx context.Context, opts AssignedOptions) ([]Summary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	summaries := []Summary{}
	startAt := 0

	for len(summaries) < limit {
		pageSize := s.cfg.PageSize
		if remaining := limit - len(summaries); !s.filtering(opts) && remaining < pageSize {
			// Without client-side filtering the remaining count is exact.
			pageSize = remaining
		}

		page, err := s.client.SearchJQL(ctx, assignedJQL, s.cfg.SearchFields, startAt, pageSize)
		if err != nil {
			return nil, err
		}

		for _, issue := range page.Issues {
			status := fieldName(&issue, "status")
			if !opts.AllStatuses && s.excluded(status) {
				continue
			}
			summaries = append(summaries, Summary{
				Key:       issue.Key,
				Title:     fieldString(&issue, "summary"),
				URL:       s.creds.BrowseURL(issue.Key),
				Status:    status,
				Type:      fieldName(&issue, "issuetype"),
				Project:   fieldName(&issue, "project"),
				Priority:  fieldName(&issue, "priority"),
				Labels:    fieldLabels(&issue),
				CreatedAt: fieldString(&issue, "created"),
				UpdatedAt: fieldString(&issue, "updated"),
			})
			if len(summaries) == limit {
				break
			}
		}

		if page.MaxResults <= 0 || len(page.Issues) == 0 {
			break
		}
		next := page.StartAt + page.MaxResults
		if next >= page.Total {
			break
		}
		startAt = next
	}

	// Client-side filtering can interleave pages; keep updated-desc order.
	slices.SortStableFunc(summaries, func(a, b Summary) int {
		return strings.Compare(b.UpdatedAt, a.UpdatedAt)
	})
	return summaries, nil
}

// filtering reports whether client-side status filtering is active.
func (s *Service) filtering(opts AssignedOptions) bool {
	return !opts.AllStatuses && len(s.cfg.ExcludedStatuses) > 0
}

// excluded reports whether a status is hidden by default.
func (s *Service) excluded(status string) bool {
	for _, excludedStatus := range s.cfg.ExcludedStatuses {
		if strings.EqualFold(status, excludedStatus) {
			return true
		}
	}
	return false
}
