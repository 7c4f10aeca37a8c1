package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, ParseInt("7", 0))
	assert.Equal(t, 20, ParseInt("", 20))
	assert.Equal(t, 20, ParseInt("abc", 20))
	assert.Equal(t, -3, ParseInt("-3", 20))
}

func pageQueryFor(t *testing.T, rawQuery string, defaultSize int, defaultSort string) PageQuery {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return ParsePageQuery(c, defaultSize, defaultSort)
}

func TestParsePageQueryDefaults(t *testing.T) {
	pq := pageQueryFor(t, "", 20, "createdAt")
	assert.Equal(t, 0, pq.Page)
	assert.Equal(t, 20, pq.Size)
	assert.Equal(t, "createdAt", pq.Sort)
}

func TestParsePageQueryExplicit(t *testing.T) {
	pq := pageQueryFor(t, "page=3&size=10&sort=latest", 20, "createdAt")
	assert.Equal(t, 3, pq.Page)
	assert.Equal(t, 10, pq.Size)
	assert.Equal(t, "latest", pq.Sort)
}

func TestParsePageQueryClampsNegatives(t *testing.T) {
	pq := pageQueryFor(t, "page=-1&size=-5", 10, "createdAt")
	assert.Equal(t, 0, pq.Page)
	assert.Equal(t, 10, pq.Size)
}
