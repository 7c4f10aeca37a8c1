package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixit-kr/gateway/internal/upstream"
)

func (suite *HandlersTestSuite) TestListNotificationsRequiresSession() {
	t := suite.T()

	w := suite.do("GET", "/api/notifications", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestListNotificationsErrorShape() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.NotificationsFunc = func(token string, page, size int) (*upstream.Page, error) {
		return nil, &apiErrNetwork
	}

	w := suite.do("GET", "/api/notifications", nil, cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The notification panel parses a flat {error, status} body
	var resp struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.NotEmpty(t, resp.Error)
}

func (suite *HandlersTestSuite) TestMarkReadIdempotent() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.MarkNotificationReadFunc = func(token, id string) error {
		assert.Equal(t, "n1", id)
		return nil
	}

	for i := 0; i < 2; i++ {
		w := suite.do("PATCH", "/api/notifications/read", map[string]string{"id": "n1"}, cookie)
		assert.Equal(t, http.StatusOK, w.Code, "call %d", i+1)
	}
	assert.Equal(t, 2, suite.api.CallCount("MarkNotificationRead"))
}

func (suite *HandlersTestSuite) TestMarkReadMissingID() {
	t := suite.T()
	cookie := suite.loginCookie("abc")
	suite.api.Calls = nil

	w := suite.do("PATCH", "/api/notifications/read", map[string]string{}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestSubscribeRelaysStream() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	upstreamEvents := "event: notification\ndata: {\"id\":\"n1\",\"message\":\"새 리뷰가 달렸습니다\"}\n\n"
	suite.api.SubscribeFunc = func(token string) (io.ReadCloser, error) {
		assert.Equal(t, "abc", token)
		return io.NopCloser(strings.NewReader(upstreamEvents)), nil
	}

	w := suite.do("GET", "/api/notifications/subscribe", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))
	assert.Equal(t, upstreamEvents, w.Body.String())
}

func (suite *HandlersTestSuite) TestSubscribeWithoutSessionSkipsBackend() {
	t := suite.T()

	w := suite.do("GET", "/api/notifications/subscribe", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, suite.api.CallCount("Subscribe"))
}

func (suite *HandlersTestSuite) TestSubscribeUpstreamFailure() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.SubscribeFunc = func(token string) (io.ReadCloser, error) {
		return nil, &apiErrNetwork
	}

	w := suite.do("GET", "/api/notifications/subscribe", nil, cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
