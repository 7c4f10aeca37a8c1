// Package client is a Go consumer of the gateway API: it owns the query
// cache, infinite pagination, and optimistic toggle state that the browser
// frontend keeps in its data hooks. The CLI is built on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/mixit-kr/gateway/internal/upstream"
)

// Client calls the gateway with a cookie-backed session.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
}

// New creates a gateway client. The cookie jar holds the session cookie
// after Login.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 15 * time.Second},
		cache:   NewCache(5 * time.Minute),
	}, nil
}

// Cache exposes the query cache, mostly for tests and the CLI's cache
// inspection command.
func (c *Client) Cache() *Cache {
	return c.cache
}

// APIError is a gateway error response
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return nil, apiErr
	}
	return raw, nil
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, id, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil,
		map[string]string{"id": id, "password": password})
	return err
}

// Logout clears the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	return err
}

// query fetches through the cache. enabled gates the call entirely - a
// disabled query answers from cache or not at all, mirroring how the search
// hook holds off until the debounced keyword is non-empty.
func (c *Client) query(ctx context.Context, key string, enabled bool, path string, q url.Values) ([]byte, error) {
	if data, ok := c.cache.Get(key); ok {
		return data, nil
	}
	if !enabled {
		return nil, nil
	}
	data, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, data)
	return data, nil
}

func pageValues(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	if size > 0 {
		q.Set("size", fmt.Sprintf("%d", size))
	}
	return q
}

func decodePage(data []byte) (*upstream.Page, error) {
	var p upstream.Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Feed returns one page of the home feed.
func (c *Client) Feed(ctx context.Context, page, size int) (*upstream.Page, error) {
	key := fmt.Sprintf("posts:feed:%d:%d", page, size)
	data, err := c.query(ctx, key, true, "/api/v1/posts", pageValues(page, size))
	if err != nil {
		return nil, err
	}
	return decodePage(data)
}

// Search returns one page of search results. An empty keyword disables the
// query instead of hitting the gateway.
func (c *Client) Search(ctx context.Context, keyword string, page, size int) (*upstream.Page, error) {
	keyword = strings.TrimSpace(keyword)
	enabled := keyword != ""
	key := fmt.Sprintf("posts:search:%s:%d:%d", keyword, page, size)
	q := pageValues(page, size)
	q.Set("keyword", keyword)
	data, err := c.query(ctx, key, enabled, "/api/v1/posts/search", q)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return decodePage(data)
}

// CategoryFeed returns one page of a category listing.
func (c *Client) CategoryFeed(ctx context.Context, category string, page, size int) (*upstream.Page, error) {
	key := fmt.Sprintf("home:category:%s:%d:%d", category, page, size)
	data, err := c.query(ctx, key, true, "/api/v1/home/category/"+category, pageValues(page, size))
	if err != nil {
		return nil, err
	}
	return decodePage(data)
}

// PopularCombos returns the popular combination list.
func (c *Client) PopularCombos(ctx context.Context) (json.RawMessage, error) {
	return c.query(ctx, "home:popular:combos", true, "/api/v1/home/popular/combos", nil)
}

// Notifications returns one page of notification history.
func (c *Client) Notifications(ctx context.Context, page, size int) (*upstream.Page, error) {
	key := fmt.Sprintf("notifications:%d:%d", page, size)
	data, err := c.query(ctx, key, true, "/api/notifications", pageValues(page, size))
	if err != nil {
		return nil, err
	}
	return decodePage(data)
}
