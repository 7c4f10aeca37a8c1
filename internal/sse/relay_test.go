package sse

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mixit-kr/gateway/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	logger.SugaredLog = logger.Log.Sugar()
	m.Run()
}

// closeTrackingReader wraps a reader and records Close calls.
type closeTrackingReader struct {
	io.Reader
	mu     sync.Mutex
	closed bool
}

func (r *closeTrackingReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *closeTrackingReader) wasClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func TestRelayCopiesEventsVerbatim(t *testing.T) {
	events := "event: notification\ndata: {\"id\":\"n1\"}\n\nid: 2\ndata: second\n\n"
	src := &closeTrackingReader{Reader: strings.NewReader(events)}

	w := httptest.NewRecorder()
	err := Relay(context.Background(), w, w, src)
	require.NoError(t, err)
	assert.Equal(t, events, w.Body.String())
	assert.True(t, src.wasClosed())
}

func TestRelayDropsMalformedLines(t *testing.T) {
	events := "data: good\nnot an sse line at all!\n\n"
	src := &closeTrackingReader{Reader: strings.NewReader(events)}

	w := httptest.NewRecorder()
	err := Relay(context.Background(), w, w, src)
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), "data: good\n")
	assert.NotContains(t, w.Body.String(), "not an sse line")
}

func TestRelayAllowsCommentsAndRetry(t *testing.T) {
	events := ": keepalive\nretry: 5000\ndata: x\n\n"
	src := &closeTrackingReader{Reader: strings.NewReader(events)}

	w := httptest.NewRecorder()
	require.NoError(t, Relay(context.Background(), w, w, src))
	assert.Equal(t, events, w.Body.String())
}

func TestRelayFlushesKeepaliveComments(t *testing.T) {
	// A lone comment with no event after it must still reach the client,
	// or the keepalive defeats its own purpose.
	src := &closeTrackingReader{Reader: strings.NewReader(": ping\n")}

	w := httptest.NewRecorder()
	require.NoError(t, Relay(context.Background(), w, w, src))
	assert.Equal(t, ": ping\n", w.Body.String())
	assert.True(t, w.Flushed)
}

// blockingReader blocks Read until closed, like an idle upstream socket.
type blockingReader struct {
	unblock chan struct{}
	once    sync.Once
}

func newBlockingReader() *blockingReader {
	return &blockingReader{unblock: make(chan struct{})}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	<-r.unblock
	return 0, errors.New("use of closed connection")
}

func (r *blockingReader) Close() error {
	r.once.Do(func() { close(r.unblock) })
	return nil
}

func TestRelayTearsDownUpstreamOnClientDisconnect(t *testing.T) {
	src := newBlockingReader()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	w := httptest.NewRecorder()
	go func() {
		done <- Relay(ctx, w, w, src)
	}()

	// Simulate the browser going away
	cancel()

	select {
	case err := <-done:
		// Cancellation is a clean teardown, not a stream failure
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not tear down after client disconnect")
	}
}

// failingReader emits some data then a mid-stream error.
type failingReader struct {
	io.Reader
	closed bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err == io.EOF {
		return n, errors.New("connection reset by peer")
	}
	return n, err
}

func (r *failingReader) Close() error {
	r.closed = true
	return nil
}

func TestRelayWritesTerminalErrorEvent(t *testing.T) {
	src := &failingReader{Reader: strings.NewReader("data: partial\n\n")}

	w := httptest.NewRecorder()
	err := Relay(context.Background(), w, w, src)
	require.Error(t, err)
	assert.Contains(t, w.Body.String(), "data: partial\n")
	assert.Contains(t, w.Body.String(), "event: error\ndata: stream closed\n\n")
	assert.True(t, src.closed)
}

func TestWriteHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHeaders(w)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", w.Header().Get("Connection"))
	assert.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))
}

func TestValidEventLine(t *testing.T) {
	valid := []string{"data: x\n", "event: notification\n", "id: 3\n", "retry: 1000\n", ": comment\n", "\n", "data\n"}
	for _, line := range valid {
		assert.True(t, validEventLine(line), "%q", line)
	}

	invalid := []string{"garbage line\n", "html><body\n", "DATA: x\n"}
	for _, line := range invalid {
		assert.False(t, validEventLine(line), "%q", line)
	}
}
