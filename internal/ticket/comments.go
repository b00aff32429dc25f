package ticket

import "context"

// Author identifies who wrote a comment.
type Author struct {
	DisplayName string `json:"displayName"`
	AccountID   string `json:"accountId"`
}

// Comment is one entry in the comment-list document.
type Comment struct {
	ID        string `json:"id"`
	Author    Author `json:"author"`
	CreatedAt string `json:"created"`
	UpdatedAt string `json:"updated"`
	Body      any    `json:"body_markdown"`
}

// Comments fetches every comment on an issue in chronological order,
// walking the paginated endpoint until the reported total is reached.
func (s *Service) Comments(ctx context.Context, key string) ([]Comment, error) {
	comments := []Comment{}
	startAt := 0
	pageSize := s.cfg.PageSize

	for {
		page, err := s.client.Comments(ctx, key, startAt, pageSize)
		if err != nil {
			return nil, err
		}

		for _, c := range page.Comments {
			comments = append(comments, Comment{
				ID: c.ID,
				Author: Author{
					DisplayName: c.Author.DisplayName,
					AccountID:   c.Author.AccountID,
				},
				CreatedAt: c.Created,
				UpdatedAt: c.Updated,
				Body:      renderBody(c.Body),
			})
		}

		// Advance using the server's counters; tolerate a server that
		// reports nothing by stopping rather than spinning.
		if page.MaxResults <= 0 || len(page.Comments) == 0 {
			break
		}
		next := page.StartAt + page.MaxResults
		if next >= page.Total {
			break
		}
		startAt = next
	}

	return comments, nil
}
