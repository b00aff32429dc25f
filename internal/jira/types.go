package jira

import "encoding/json"

// User identifies a Jira account on comments and issue fields.
type User struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

// Issue is the wire shape of a single issue. Fields are kept raw because the
// requested field set varies per operation and includes discovered custom
// field ids.
type Issue struct {
	Key            string                     `json:"key"`
	Fields         map[string]json.RawMessage `json:"fields"`
	RenderedFields map[string]json.RawMessage `json:"renderedFields"`
}

// Comment is the wire shape of a single issue comment. Body stays raw: it is
// an Atlassian Document Format document rendered downstream.
type Comment struct {
	ID      string          `json:"id"`
	Author  User            `json:"author"`
	Body    json.RawMessage `json:"body"`
	Created string          `json:"created"`
	Updated string          `json:"updated"`
}

// CommentPage is one page of the comment-list endpoint.
type CommentPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Comments   []Comment `json:"comments"`
}

// SearchPage is one page of the JQL search endpoint.
type SearchPage struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// FieldInfo describes an entry in the Jira field catalog.
type FieldInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
