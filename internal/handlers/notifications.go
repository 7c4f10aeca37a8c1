package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mixit-kr/gateway/internal/errors"
	"github.com/mixit-kr/gateway/internal/logger"
	"github.com/mixit-kr/gateway/internal/metrics"
	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/sse"
	"github.com/mixit-kr/gateway/internal/util"
)

// Notification errors use a flat {error, status} shape; the notification
// panel predates the structured error envelope and still parses this form.
func respondNotificationError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "알림 처리에 실패했습니다"
	if apiErr, ok := err.(*errors.APIError); ok {
		status = apiErr.Status
		msg = apiErr.Message
	}
	c.JSON(status, gin.H{"error": msg, "status": status})
}

// ListNotifications fetches the caller's notification history.
// GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		util.RespondUnauthorized(c)
		return
	}
	pq := util.ParsePageQuery(c, defaultNotificationPageSize, "createdAt")

	page, err := h.api.Notifications(c.Request.Context(), sess.AccessToken, pq.Page, pq.Size)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MarkNotificationRead marks exactly one notification read. Idempotent: a
// second call for the same id succeeds again. The optimistic read-state flip
// lives client-side; this endpoint only relays.
// PATCH /api/notifications/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		util.RespondUnauthorized(c)
		return
	}

	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "알림 ID가 필요합니다")
		return
	}

	if err := h.api.MarkNotificationRead(c.Request.Context(), sess.AccessToken, req.ID); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// SubscribeNotifications relays the backend's notification event stream to
// the browser. One upstream connection per subscriber, torn down when the
// browser disconnects; the client is responsible for re-subscribing.
// GET /api/notifications/subscribe
func (h *Handlers) SubscribeNotifications(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		util.RespondUnauthorized(c)
		return
	}

	src, err := h.api.Subscribe(c.Request.Context(), sess.AccessToken)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	m := metrics.Get()
	m.SSESessionsTotal.Inc()
	m.SSESessionsActive.Inc()
	defer m.SSESessionsActive.Dec()

	sse.WriteHeaders(c.Writer)
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	if err := sse.Relay(c.Request.Context(), c.Writer, c.Writer, src); err != nil {
		logger.Log.Warn("notification stream ended with error",
			logger.WithUserID(sess.UserID),
			zap.Error(err),
		)
	}
}
