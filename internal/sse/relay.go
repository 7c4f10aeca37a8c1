// Package sse bridges one inbound server-sent-event stream to one outbound
// client connection. Each subscriber owns exactly one upstream connection;
// when either side goes away the other is torn down, so no backend socket
// outlives its browser.
package sse

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mixit-kr/gateway/internal/logger"
)

// WriteHeaders sets the response headers that mark this connection as an
// event stream and keep intermediaries from buffering it.
func WriteHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}

// Relay copies src to w line by line, flushing at every event boundary and
// keepalive comment.
// Events pass through as they arrive - no batching, no reordering. Lines that
// are not valid SSE fields are dropped and logged rather than forwarded.
//
// Relay returns when ctx is cancelled (client went away), src reaches EOF
// (backend ended the stream), or a read/write error occurs. src is always
// closed before returning. On upstream errors a terminal error event is
// written so the subscriber sees a visible failure instead of a silent hang.
func Relay(ctx context.Context, w io.Writer, flusher http.Flusher, src io.ReadCloser) error {
	defer src.Close()

	// Close the upstream connection as soon as the client disconnects so the
	// blocked Read below returns.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			src.Close()
		case <-done:
		}
	}()

	reader := bufio.NewReader(src)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if validEventLine(line) {
				if _, werr := io.WriteString(w, line); werr != nil {
					return werr
				}
				// Blank line terminates an event; push it out immediately.
				// Comment lines are keepalives, so they flush too instead of
				// sitting in the buffer until the next event.
				trimmed := strings.TrimRight(line, "\r\n")
				if (trimmed == "" || strings.HasPrefix(trimmed, ":")) && flusher != nil {
					flusher.Flush()
				}
			} else {
				logger.Log.Warn("dropping malformed event line",
					zap.Int("length", len(line)),
				)
			}
		}
		if err != nil {
			if ctx.Err() != nil || err == io.EOF {
				return nil
			}
			// Backend dropped mid-stream: tell the subscriber before closing
			io.WriteString(w, "event: error\ndata: stream closed\n\n")
			if flusher != nil {
				flusher.Flush()
			}
			return err
		}
	}
}

// validEventLine reports whether line is a legal SSE frame line: a field
// (data, event, id, retry), a comment, or an event-terminating blank line.
func validEventLine(line string) bool {
	trimmed := strings.TrimRight(line, "\r\n")
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, ":") {
		return true
	}
	field, _, found := strings.Cut(trimmed, ":")
	if !found {
		// A bare field name with no colon is legal per the SSE grammar
		field = trimmed
	}
	switch field {
	case "data", "event", "id", "retry":
		return true
	}
	return false
}
