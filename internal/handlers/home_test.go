package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"

	"github.com/mixit-kr/gateway/internal/upstream"
)

func (suite *HandlersTestSuite) TestCategoryFeedNormalizesCase() {
	t := suite.T()

	suite.api.CategoryFeedFunc = func(token, category string, page, size int) (*upstream.Page, error) {
		assert.Equal(t, "CAFE", category)
		assert.Equal(t, 20, size)
		return &upstream.Page{TotalPages: 1, Content: json.RawMessage(`[]`)}, nil
	}

	w := suite.do("GET", "/api/v1/home/category/cafe", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestCategoryFeedUnknownCategory() {
	t := suite.T()

	w := suite.do("GET", "/api/v1/home/category/bar", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "존재하지 않는 카테고리입니다")
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestHomeReadsWorkAnonymously() {
	t := suite.T()

	suite.api.PopularCombosFunc = func(token string, size int) (json.RawMessage, error) {
		assert.Empty(t, token, "anonymous read should carry no caller token")
		assert.Equal(t, 5, size)
		return json.RawMessage(`[{"id":1}]`), nil
	}
	suite.api.TodayRecommendationsFunc = func(token string, size int) (json.RawMessage, error) {
		assert.Equal(t, 3, size)
		return json.RawMessage(`[]`), nil
	}
	suite.api.TagsFunc = func(token string, size int) (json.RawMessage, error) {
		assert.Equal(t, 10, size)
		return json.RawMessage(`[]`), nil
	}

	for _, path := range []string{
		"/api/v1/home/popular/combos",
		"/api/v1/home/recommendations/today",
		"/api/v1/home/tags",
	} {
		w := suite.do("GET", path, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func (suite *HandlersTestSuite) TestHomeReadsCarrySessionToken() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.CategoryFeedFunc = func(token, category string, page, size int) (*upstream.Page, error) {
		assert.Equal(t, "abc", token)
		return &upstream.Page{TotalPages: 1, Content: json.RawMessage(`[]`)}, nil
	}

	w := suite.do("GET", "/api/v1/home/category/restaurant", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}
