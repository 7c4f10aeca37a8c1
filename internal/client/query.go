package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mixit-kr/gateway/internal/upstream"
)

// InfiniteResult is the accumulated state of a paged query: the flattened
// content of every page fetched so far, plus the cursor for the next fetch.
type InfiniteResult struct {
	Pages    []*upstream.Page
	NextPage *int
}

// Items flattens the content arrays of all fetched pages in order.
func (r *InfiniteResult) Items() ([]json.RawMessage, error) {
	var items []json.RawMessage
	for _, p := range r.Pages {
		if len(p.Content) == 0 {
			continue
		}
		var batch []json.RawMessage
		if err := json.Unmarshal(p.Content, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}
	return items, nil
}

// HasMore reports whether another page can be fetched.
func (r *InfiniteResult) HasMore() bool {
	return r.NextPage != nil
}

// InfiniteQuery follows a paged endpoint from the first page, fetching
// successive pages while the response carries a nextPage cursor, up to
// maxPages (0 means no limit). The absence of the cursor is the only stop
// condition besides the cap.
func (c *Client) InfiniteQuery(ctx context.Context, path string, size, maxPages int, extra url.Values) (*InfiniteResult, error) {
	res := &InfiniteResult{}
	page := 0
	for {
		q := pageValues(page, size)
		for k, vs := range extra {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		key := fmt.Sprintf("infinite:%s:%s", path, q.Encode())
		data, err := c.query(ctx, key, true, path, q)
		if err != nil {
			return res, err
		}
		p, err := decodePage(data)
		if err != nil {
			return res, err
		}
		res.Pages = append(res.Pages, p)
		res.NextPage = p.NextPage

		if p.NextPage == nil {
			return res, nil
		}
		if maxPages > 0 && len(res.Pages) >= maxPages {
			return res, nil
		}
		page = *p.NextPage
	}
}

// FeedAll pages through the home feed.
func (c *Client) FeedAll(ctx context.Context, size, maxPages int) (*InfiniteResult, error) {
	return c.InfiniteQuery(ctx, "/api/v1/posts", size, maxPages, nil)
}

// SearchAll pages through search results for a keyword.
func (c *Client) SearchAll(ctx context.Context, keyword string, size, maxPages int) (*InfiniteResult, error) {
	extra := url.Values{}
	extra.Set("keyword", keyword)
	return c.InfiniteQuery(ctx, "/api/v1/posts/search", size, maxPages, extra)
}
