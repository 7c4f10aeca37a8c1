package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixit-kr/gateway/internal/upstream"
)

func (suite *HandlersTestSuite) TestListPostsDefaults() {
	t := suite.T()

	suite.api.ListPostsFunc = func(token string, page, size int, sort string) (*upstream.Page, error) {
		assert.Empty(t, token)
		assert.Equal(t, 0, page)
		assert.Equal(t, 20, size)
		assert.Equal(t, "createdAt", sort)
		return &upstream.Page{Page: 0, Size: 20, TotalPages: 1, Content: json.RawMessage(`[]`)}, nil
	}

	w := suite.do("GET", "/api/v1/posts", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestListPostsRelaysNextPage() {
	t := suite.T()

	next := 3
	suite.api.ListPostsFunc = func(token string, page, size int, sort string) (*upstream.Page, error) {
		return &upstream.Page{
			Page:       2,
			Size:       20,
			TotalPages: 5,
			Content:    json.RawMessage(`[{"id":1}]`),
			NextPage:   &next,
		}, nil
	}

	w := suite.do("GET", "/api/v1/posts?page=2", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		NextPage *int `json:"nextPage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.NextPage)
	assert.Equal(t, 3, *resp.NextPage)
}

func (suite *HandlersTestSuite) TestLastPageOmitsNextPage() {
	t := suite.T()

	suite.api.ListPostsFunc = func(token string, page, size int, sort string) (*upstream.Page, error) {
		return &upstream.Page{Page: 4, Size: 20, TotalPages: 5, Content: json.RawMessage(`[]`)}, nil
	}

	w := suite.do("GET", "/api/v1/posts?page=4", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "nextPage")
}

func (suite *HandlersTestSuite) TestSearchEmptyKeywordRejectedLocally() {
	t := suite.T()

	for _, q := range []string{"", "?keyword=", "?keyword=%20%20"} {
		w := suite.do("GET", "/api/v1/posts/search"+q, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestSearchUsesLatestSort() {
	t := suite.T()

	suite.api.SearchPostsFunc = func(token, keyword string, page, size int, sort string) (*upstream.Page, error) {
		assert.Equal(t, "소주", keyword)
		assert.Equal(t, "latest", sort)
		return &upstream.Page{TotalPages: 1, Content: json.RawMessage(`[]`)}, nil
	}

	w := suite.do("GET", "/api/v1/posts/search?keyword=%EC%86%8C%EC%A3%BC", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, suite.api.CallCount("SearchPosts"))
}

func (suite *HandlersTestSuite) TestCreatePostMissingTitle() {
	t := suite.T()
	cookie := suite.loginCookie("abc")
	suite.api.Calls = nil

	w := suite.do("POST", "/api/v1/posts", map[string]string{
		"category": "CAFE",
		"content":  "조합 설명",
	}, cookie)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"title"`)
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestCreatePostPassesBodyThrough() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.CreatePostFunc = func(token string, body json.RawMessage) (json.RawMessage, error) {
		assert.Equal(t, "abc", token)

		var probe map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &probe))
		// Unknown fields survive the pass-through untouched
		assert.Equal(t, "extra", probe["customField"])
		return json.RawMessage(`{"id":99}`), nil
	}

	w := suite.do("POST", "/api/v1/posts", map[string]string{
		"title":       "메로나 소주",
		"category":    "CONVENIENCE",
		"content":     "메로나에 소주",
		"customField": "extra",
	}, cookie)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func (suite *HandlersTestSuite) TestRatePostRangeChecked() {
	t := suite.T()
	cookie := suite.loginCookie("abc")
	suite.api.Calls = nil

	for _, rating := range []float64{0, 0.4, 5.5, -1} {
		w := suite.do("POST", "/api/v1/posts/1/rate", map[string]float64{"rating": rating}, cookie)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "rating %v", rating)
	}
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestCountViewIsAnonymous() {
	t := suite.T()

	suite.api.CountViewFunc = func(id string) error {
		assert.Equal(t, "42", id)
		return nil
	}

	w := suite.do("POST", "/api/v1/posts/42/views", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, suite.api.CallCount("CountView"))
}
