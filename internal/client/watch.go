package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mixit-kr/gateway/internal/upstream"
)

// Event is one server-sent event from the notification stream.
type Event struct {
	Type string
	Data string
}

// Notification decodes the event payload as a notification, when possible.
func (e Event) Notification() (*upstream.Notification, bool) {
	var n upstream.Notification
	if err := json.Unmarshal([]byte(e.Data), &n); err != nil {
		return nil, false
	}
	return &n, true
}

// Watch subscribes to the notification stream and delivers parsed events to
// handle until the stream ends or ctx is cancelled. A terminal error event
// from the gateway is delivered like any other and then the stream closes.
func (c *Client) Watch(ctx context.Context, handle func(Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/notifications/subscribe", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	// No Timeout on the stream request; ctx is the only bound.
	streamClient := &http.Client{Jar: c.http.Jar}
	resp, err := streamClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "알림 스트림에 연결할 수 없습니다"}
	}

	var ev Event
	scanner := bufio.NewScanner(resp.Body)
	// The gateway relays data lines unchanged, so allow well past the
	// default 64KB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if ev.Data != "" || ev.Type != "" {
				handle(ev)
			}
			ev = Event{}
		case strings.HasPrefix(line, "event:"):
			ev.Type = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimPrefix(line, "data:")
			data = strings.TrimPrefix(data, " ")
			if ev.Data != "" {
				ev.Data += "\n"
			}
			ev.Data += data
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// MarkRead marks a notification as read and drops cached notification pages.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPatch, "/api/notifications/read", nil,
		map[string]string{"id": id})
	if err != nil {
		return err
	}
	c.cache.Invalidate("notifications")
	return nil
}
