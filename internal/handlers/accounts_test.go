package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixit-kr/gateway/internal/upstream"
)

func (suite *HandlersTestSuite) TestCheckDuplicateEchoesSubmittedField() {
	t := suite.T()

	for _, field := range []string{"loginId", "nickname", "email"} {
		suite.api.CheckDuplicateFunc = func(f, value string) (*upstream.DuplicateResult, error) {
			return &upstream.DuplicateResult{Available: false, Field: f}, nil
		}

		w := suite.do("POST", "/api/v1/accounts/duplicate",
			map[string]string{"field": field, "value": "taken"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool   `json:"success"`
			Field   string `json:"field"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, field, resp.Field, "collision must name the submitted field")
		assert.NotEmpty(t, resp.Message)
	}
}

func (suite *HandlersTestSuite) TestCheckDuplicateAvailable() {
	t := suite.T()

	suite.api.CheckDuplicateFunc = func(field, value string) (*upstream.DuplicateResult, error) {
		return &upstream.DuplicateResult{Available: true}, nil
	}

	w := suite.do("POST", "/api/v1/accounts/duplicate",
		map[string]string{"field": "nickname", "value": "fresh"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.NotContains(t, w.Body.String(), "field")
}

func (suite *HandlersTestSuite) TestCheckDuplicateUnknownField() {
	t := suite.T()

	w := suite.do("POST", "/api/v1/accounts/duplicate",
		map[string]string{"field": "phoneNumber", "value": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestSignupValidation() {
	t := suite.T()

	cases := []map[string]string{
		{"loginId": "abc", "password": "longenough8", "nickname": "닉네임", "email": "a@b.com"}, // loginId too short
		{"loginId": "gooduser", "password": "short", "nickname": "닉네임", "email": "a@b.com"},  // password too short
		{"loginId": "gooduser", "password": "longenough8", "nickname": "닉", "email": "not-an-email"},
	}
	for i, body := range cases {
		w := suite.do("POST", "/api/v1/accounts/signup", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "case %d", i)
	}
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestSignupForwards() {
	t := suite.T()

	suite.api.SignupFunc = func(body map[string]interface{}) (json.RawMessage, error) {
		assert.Equal(t, "gooduser", body["loginId"])
		return json.RawMessage(`{"id":"u2"}`), nil
	}

	w := suite.do("POST", "/api/v1/accounts/signup", map[string]string{
		"loginId":  "gooduser",
		"password": "longenough8",
		"nickname": "새닉네임",
		"email":    "new@mixit.kr",
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteAccountClearsSession() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.DeleteAccountFunc = func(token string) error {
		assert.Equal(t, "abc", token)
		return nil
	}

	w := suite.do("DELETE", "/api/v1/accounts", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == "mixit_session" {
			assert.Empty(t, c.Value)
			return
		}
	}
	t.Fatal("account deletion left the session cookie in place")
}
