package jira

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Issue fetches a single issue restricted to the given fields. When
// expandRendered is set, the response carries renderedFields alongside the
// raw field values.
func (c *Client) Issue(ctx context.Context, key string, fields []string, expandRendered bool) (*Issue, error) {
	query := url.Values{}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}
	if expandRendered {
		query.Set("expand", "renderedFields")
	}

	data, err := c.doRequest(ctx, http.MethodGet, "issue/"+key, query, nil)
	if err != nil {
		return nil, err
	}

	var issue Issue
	if err := decode(data, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Comments fetches one page of comments for an issue, in chronological order.
func (c *Client) Comments(ctx context.Context, key string, startAt, maxResults int) (*CommentPage, error) {
	query := url.Values{}
	query.Set("startAt", strconv.Itoa(startAt))
	query.Set("maxResults", strconv.Itoa(maxResults))

	data, err := c.doRequest(ctx, http.MethodGet, "issue/"+key+"/comment", query, nil)
	if err != nil {
		return nil, err
	}

	var page CommentPage
	if err := decode(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Fields fetches the field catalog, used to discover custom field ids.
func (c *Client) Fields(ctx context.Context) ([]FieldInfo, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "field", nil, nil)
	if err != nil {
		return nil, err
	}

	var fields []FieldInfo
	if err := decode(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Search request modes, tried in order. Jira Cloud deployments differ in
// which body shape the enhanced-search endpoint accepts, so a mode rejected
// with HTTP 400 or 405 falls through to the next one. The legacy GET
// /rest/api/2/search endpoint is retired and never used.
const (
	searchModePostObject = iota
	searchModePostString
	searchModeGet
)

// SearchJQL runs a structured JQL search and returns one page of issues.
func (c *Client) SearchJQL(ctx context.Context, jql string, fields []string, startAt, maxResults int) (*SearchPage, error) {
	var lastErr error
	for mode := searchModePostObject; mode <= searchModeGet; mode++ {
		page, err := c.searchPage(ctx, mode, jql, fields, startAt, maxResults)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if status := statusOf(err); status != http.StatusBadRequest && status != http.StatusMethodNotAllowed {
			return nil, err
		}
		c.logger.Debug("search mode rejected, falling back", "mode", mode, "status", statusOf(err))
	}
	return nil, lastErr
}

// searchPage issues a single search request in the given mode.
func (c *Client) searchPage(ctx context.Context, mode int, jql string, fields []string, startAt, maxResults int) (*SearchPage, error) {
	const path = "search/jql"

	var data []byte
	var err error
	switch mode {
	case searchModePostObject:
		body := map[string]any{
			"jql":        map[string]string{"query": jql},
			"fields":     fields,
			"startAt":    startAt,
			"maxResults": maxResults,
		}
		data, err = c.doRequest(ctx, http.MethodPost, path, nil, body)
	case searchModePostString:
		body := map[string]any{
			"jql":        jql,
			"fields":     fields,
			"startAt":    startAt,
			"maxResults": maxResults,
		}
		data, err = c.doRequest(ctx, http.MethodPost, path, nil, body)
	default:
		query := url.Values{}
		query.Set("jql", jql)
		query.Set("fields", strings.Join(fields, ","))
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(maxResults))
		data, err = c.doRequest(ctx, http.MethodGet, path, query, nil)
	}
	if err != nil {
		return nil, err
	}

	var page SearchPage
	if err := decode(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
