package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseInt parses s, falling back to defaultValue on empty or bad input
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// PageQuery holds the standard pagination parameters shared by every list
// endpoint: page is 0-based, size and sort vary per resource.
type PageQuery struct {
	Page int
	Size int
	Sort string
}

// ParsePageQuery reads page/size/sort from the request with per-endpoint
// defaults. Negative pages and non-positive sizes collapse to the defaults.
func ParsePageQuery(c *gin.Context, defaultSize int, defaultSort string) PageQuery {
	pq := PageQuery{
		Page: ParseInt(c.Query("page"), 0),
		Size: ParseInt(c.Query("size"), defaultSize),
		Sort: c.DefaultQuery("sort", defaultSort),
	}
	if pq.Page < 0 {
		pq.Page = 0
	}
	if pq.Size <= 0 {
		pq.Size = defaultSize
	}
	return pq
}
