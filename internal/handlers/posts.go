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

// ListPosts returns the paginated home feed.
// GET /api/v1/posts
func (h *Handlers) ListPosts(c *gin.Context) {
	pq := util.ParsePageQuery(c, defaultPostPageSize, "createdAt")

	page, err := h.api.ListPosts(c.Request.Context(), session.Token(c), pq.Page, pq.Size, pq.Sort)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPost returns one post with its detail payload.
// GET /api/v1/posts/:id
func (h *Handlers) GetPost(c *gin.Context) {
	data, err := h.api.GetPost(c.Request.Context(), session.Token(c), c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// CreatePost forwards a new post. The body passes through untouched after a
// required-field check; the backend owns validation beyond presence.
// POST /api/v1/posts
func (h *Handlers) CreatePost(c *gin.Context) {
	body, ok := h.readPostBody(c)
	if !ok {
		return
	}

	data, err := h.api.CreatePost(c.Request.Context(), session.Token(c), body)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, data)
}

// UpdatePost forwards a post edit.
// PUT /api/v1/posts/:id
func (h *Handlers) UpdatePost(c *gin.Context) {
	body, ok := h.readPostBody(c)
	if !ok {
		return
	}

	data, err := h.api.UpdatePost(c.Request.Context(), session.Token(c), c.Param("id"), body)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// DeletePost forwards a post deletion.
// DELETE /api/v1/posts/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	if err := h.api.DeletePost(c.Request.Context(), session.Token(c), c.Param("id")); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SearchPosts runs a keyword search. An empty keyword is rejected locally;
// the search box is debounced client-side and never submits blanks.
// GET /api/v1/posts/search
func (h *Handlers) SearchPosts(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		util.RespondBadRequest(c, "검색어를 입력해 주세요")
		return
	}
	pq := util.ParsePageQuery(c, defaultSearchPageSize, "latest")

	page, err := h.api.SearchPosts(c.Request.Context(), session.Token(c), keyword, pq.Page, pq.Size, pq.Sort)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CountView records a post view, anonymous or not.
// POST /api/v1/posts/:id/views
func (h *Handlers) CountView(c *gin.Context) {
	if err := h.api.CountView(c.Request.Context(), c.Param("id")); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readPostBody buffers and sanity-checks a post payload: it must be JSON
// with a non-empty title, category and content. Everything else is the
// backend's to validate.
func (h *Handlers) readPostBody(c *gin.Context) (json.RawMessage, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		util.RespondBadRequest(c, "요청 본문이 비어 있습니다")
		return nil, false
	}

	var probe struct {
		Title    string `json:"title"`
		Category string `json:"category"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		util.RespondBadRequest(c, "요청 형식이 올바르지 않습니다")
		return nil, false
	}
	switch {
	case strings.TrimSpace(probe.Title) == "":
		util.RespondValidationError(c, "title", "제목을 입력해 주세요")
		return nil, false
	case strings.TrimSpace(probe.Category) == "":
		util.RespondValidationError(c, "category", "카테고리를 선택해 주세요")
		return nil, false
	case strings.TrimSpace(probe.Content) == "":
		util.RespondValidationError(c, "content", "내용을 입력해 주세요")
		return nil, false
	}

	return raw, true
}
