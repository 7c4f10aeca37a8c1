package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"

	"github.com/mixit-kr/gateway/internal/upstream"
)

func (suite *HandlersTestSuite) TestListReviewsDefaults() {
	t := suite.T()

	suite.api.ListReviewsFunc = func(token, postID string, page, size int) (*upstream.Page, error) {
		assert.Equal(t, "42", postID)
		assert.Equal(t, 0, page)
		assert.Equal(t, 10, size)
		return &upstream.Page{TotalPages: 1, Content: json.RawMessage(`[]`)}, nil
	}

	w := suite.do("GET", "/api/v1/posts/42/reviews", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestCreateReviewEmptyContent() {
	t := suite.T()
	cookie := suite.loginCookie("abc")
	suite.api.Calls = nil

	w := suite.do("POST", "/api/v1/posts/42/reviews", map[string]string{"content": "   "}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"content"`)
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestUpdateReviewForwardsIDs() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.UpdateReviewFunc = func(token, postID, reviewID string, body json.RawMessage) (json.RawMessage, error) {
		assert.Equal(t, "abc", token)
		assert.Equal(t, "42", postID)
		assert.Equal(t, "7", reviewID)
		return json.RawMessage(`{"id":7}`), nil
	}

	w := suite.do("PATCH", "/api/v1/posts/42/reviews/7", map[string]string{"content": "수정된 리뷰"}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteReviewRelaysUpstreamError() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.DeleteReviewFunc = func(token, postID, reviewID string) error {
		return &apiErrUpstream400
	}

	w := suite.do("DELETE", "/api/v1/posts/42/reviews/7", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
