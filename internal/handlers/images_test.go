package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixit-kr/gateway/internal/upstream"
)

var (
	pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	gifHeader = []byte("GIF89a0000000000")
)

func (suite *HandlersTestSuite) uploadImage(cookie *http.Cookie, filename string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(suite.T(), err)
	_, err = part.Write(data)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), mw.Close())

	req, _ := http.NewRequest("POST", "/api/v1/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestUploadImageRejectsNonImage() {
	t := suite.T()
	cookie := suite.loginCookie("abc")
	suite.api.Calls = nil

	w := suite.uploadImage(cookie, "sneaky.png", gifHeader)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	// Sniffed type wins over the filename; backend never contacted
	assert.Equal(t, 0, suite.api.TotalCalls())
}

func (suite *HandlersTestSuite) TestUploadImageSniffsContent() {
	t := suite.T()
	cookie := suite.loginCookie("abc")

	suite.api.UploadImageFunc = func(token, filename, contentType string, data []byte) (*upstream.ImageResult, error) {
		assert.Equal(t, "abc", token)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, pngHeader, data)
		return &upstream.ImageResult{ID: "img1", URL: "https://cdn.mixit.kr/img1.png"}, nil
	}

	// Filename says JPEG; the bytes say PNG and the bytes win
	w := suite.uploadImage(cookie, "photo.jpg", pngHeader)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "img1")
}

func (suite *HandlersTestSuite) TestUploadImageMissingFile() {
	t := suite.T()
	cookie := suite.loginCookie("abc")
	suite.api.Calls = nil

	req, _ := http.NewRequest("POST", "/api/v1/images", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, suite.api.TotalCalls())
}
