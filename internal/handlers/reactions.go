package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/util"
)

// Like/bookmark/rate are symmetric POST/DELETE pairs with identical URL
// shape. Toggle state is owned by the client's optimistic wrapper; the
// gateway only forwards, so two rapid clicks may both reach the backend and
// conflict resolution stays the backend's problem.

// LikePost records a like.
// POST /api/v1/posts/:id/like
func (h *Handlers) LikePost(c *gin.Context) {
	if err := h.api.LikePost(c.Request.Context(), session.Token(c), c.Param("id")); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// UnlikePost removes a like.
// DELETE /api/v1/posts/:id/like
func (h *Handlers) UnlikePost(c *gin.Context) {
	if err := h.api.UnlikePost(c.Request.Context(), session.Token(c), c.Param("id")); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}

// BookmarkPost records a bookmark.
// POST /api/v1/posts/:id/bookmark
func (h *Handlers) BookmarkPost(c *gin.Context) {
	if err := h.api.BookmarkPost(c.Request.Context(), session.Token(c), c.Param("id")); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": true})
}

// UnbookmarkPost removes a bookmark.
// DELETE /api/v1/posts/:id/bookmark
func (h *Handlers) UnbookmarkPost(c *gin.Context) {
	if err := h.api.UnbookmarkPost(c.Request.Context(), session.Token(c), c.Param("id")); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": false})
}

// GetRating returns a post's rating summary.
// GET /api/v1/posts/:id/rate
func (h *Handlers) GetRating(c *gin.Context) {
	data, err := h.api.GetRating(c.Request.Context(), session.Token(c), c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// RatePost submits the caller's star rating.
// POST /api/v1/posts/:id/rate
func (h *Handlers) RatePost(c *gin.Context) {
	var req struct {
		Rating *float64 `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		util.RespondBadRequest(c, "별점을 입력해 주세요")
		return
	}
	if *req.Rating < 0.5 || *req.Rating > 5 {
		util.RespondValidationError(c, "rating", "별점은 0.5점부터 5점까지입니다")
		return
	}

	data, err := h.api.RatePost(c.Request.Context(), session.Token(c), c.Param("id"), *req.Rating)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
