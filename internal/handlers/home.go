package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/upstream"
	"github.com/mixit-kr/gateway/internal/util"
)

// Home endpoints are public: anonymous visitors read them through the
// shared service token, signed-in users through their own (so hasLiked and
// hasBookmarked come back filled in).

// CategoryFeed lists posts for one category.
// GET /api/v1/home/category/:category
func (h *Handlers) CategoryFeed(c *gin.Context) {
	category := strings.ToUpper(c.Param("category"))
	if !upstream.ValidCategory(category) {
		util.RespondBadRequest(c, "존재하지 않는 카테고리입니다")
		return
	}
	pq := util.ParsePageQuery(c, defaultCategoryPageSize, "createdAt")

	page, err := h.api.CategoryFeed(c.Request.Context(), session.Token(c), category, pq.Page, pq.Size)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// PopularCombos returns the most-liked combinations.
// GET /api/v1/home/popular/combos
func (h *Handlers) PopularCombos(c *gin.Context) {
	size := util.ParseInt(c.Query("size"), defaultComboCount)

	data, err := h.api.PopularCombos(c.Request.Context(), session.Token(c), size)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// TodayRecommendations returns today's picks.
// GET /api/v1/home/recommendations/today
func (h *Handlers) TodayRecommendations(c *gin.Context) {
	size := util.ParseInt(c.Query("size"), defaultTodayCount)

	data, err := h.api.TodayRecommendations(c.Request.Context(), session.Token(c), size)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Tags returns the tag list.
// GET /api/v1/home/tags
func (h *Handlers) Tags(c *gin.Context) {
	size := util.ParseInt(c.Query("size"), defaultTagCount)

	data, err := h.api.Tags(c.Request.Context(), session.Token(c), size)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// PopularTags returns the most-used tags.
// GET /api/v1/home/tags/popular
func (h *Handlers) PopularTags(c *gin.Context) {
	size := util.ParseInt(c.Query("size"), defaultTagCount)

	data, err := h.api.PopularTags(c.Request.Context(), session.Token(c), size)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
