package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mixit-kr/gateway/internal/optimistic"
)

// Toggle is an optimistic boolean reaction on a post, like like or bookmark.
// Flip applies the new state locally before the gateway call and rolls it
// back if the call fails. On success the cache entries it names are dropped
// so the next read refetches.
type Toggle struct {
	client      *Client
	state       *optimistic.Value[bool]
	path        string
	invalidates []string
}

func newToggle(c *Client, initial bool, path string, invalidates ...string) *Toggle {
	return &Toggle{
		client:      c,
		state:       optimistic.New(initial),
		path:        path,
		invalidates: invalidates,
	}
}

// Active returns the current, possibly tentative, state.
func (t *Toggle) Active() bool {
	return t.state.Get()
}

// Flip toggles the state optimistically. The observed state is already the
// target while the gateway call runs; a failed call restores the old value.
func (t *Toggle) Flip(ctx context.Context) error {
	target := !t.state.Get()
	err := t.state.Do(ctx, target, func(ctx context.Context) error {
		method := http.MethodDelete
		if target {
			method = http.MethodPost
		}
		_, err := t.client.do(ctx, method, t.path, nil, nil)
		return err
	})
	if err != nil {
		return err
	}
	t.client.cache.Invalidate(t.invalidates...)
	return nil
}

// LikeToggle builds the like toggle for a post. Liking invalidates the home
// feed, category listings, and popular combos along with the post itself.
func (c *Client) LikeToggle(postID int64, liked bool) *Toggle {
	return newToggle(c, liked,
		fmt.Sprintf("/api/v1/posts/%d/like", postID),
		fmt.Sprintf("posts:detail:%d", postID), "posts:feed", "infinite:/api/v1/posts",
		"home:category", "home:popular")
}

// BookmarkToggle builds the bookmark toggle for a post.
func (c *Client) BookmarkToggle(postID int64, bookmarked bool) *Toggle {
	return newToggle(c, bookmarked,
		fmt.Sprintf("/api/v1/posts/%d/bookmark", postID),
		fmt.Sprintf("posts:detail:%d", postID), "posts:feed")
}
