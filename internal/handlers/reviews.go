package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/util"
)

// ListReviews returns a post's paginated reviews.
// GET /api/v1/posts/:id/reviews
func (h *Handlers) ListReviews(c *gin.Context) {
	pq := util.ParsePageQuery(c, defaultReviewPageSize, "createdAt")

	page, err := h.api.ListReviews(c.Request.Context(), session.Token(c), c.Param("id"), pq.Page, pq.Size)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateReview forwards a new review on a post.
// POST /api/v1/posts/:id/reviews
func (h *Handlers) CreateReview(c *gin.Context) {
	body, ok := readReviewBody(c)
	if !ok {
		return
	}

	data, err := h.api.CreateReview(c.Request.Context(), session.Token(c), c.Param("id"), body)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, data)
}

// UpdateReview forwards a review edit.
// PATCH /api/v1/posts/:id/reviews/:reviewId
func (h *Handlers) UpdateReview(c *gin.Context) {
	body, ok := readReviewBody(c)
	if !ok {
		return
	}

	data, err := h.api.UpdateReview(c.Request.Context(), session.Token(c), c.Param("id"), c.Param("reviewId"), body)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// DeleteReview forwards a review deletion.
// DELETE /api/v1/posts/:id/reviews/:reviewId
func (h *Handlers) DeleteReview(c *gin.Context) {
	if err := h.api.DeleteReview(c.Request.Context(), session.Token(c), c.Param("id"), c.Param("reviewId")); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func readReviewBody(c *gin.Context) (json.RawMessage, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		util.RespondBadRequest(c, "요청 본문이 비어 있습니다")
		return nil, false
	}

	var probe struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		util.RespondBadRequest(c, "요청 형식이 올바르지 않습니다")
		return nil, false
	}
	if strings.TrimSpace(probe.Content) == "" {
		util.RespondValidationError(c, "content", "내용을 입력해 주세요")
		return nil, false
	}

	return raw, true
}
