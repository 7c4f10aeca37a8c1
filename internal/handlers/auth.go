package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mixit-kr/gateway/internal/errors"
	"github.com/mixit-kr/gateway/internal/logger"
	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/util"
)

const oauthStateCookie = "mixit_oauth_state"

// LoginRequest represents a credential login request
type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates with loginId/password against the backend and sets
// the session cookie.
// POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "아이디와 비밀번호를 입력해 주세요")
		return
	}

	res, err := h.api.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		// Backend rejections carry the backend's message verbatim; network
		// failures stay distinct so the UI can tell them apart
		util.RespondError(c, err)
		return
	}

	sess, err := h.sessions.Establish(c, res)
	if err != nil {
		util.RespondInternalError(c, "세션 생성에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           sess.UserID,
			"loginId":      sess.LoginID,
			"name":         sess.Nickname,
			"email":        sess.Email,
			"profileImage": sess.ProfileImage,
		},
		"expiresAt": sess.ExpiresAt,
	})
}

// Logout clears the session cookie. The backend token simply expires; there
// is no server-side session to destroy.
// POST /api/v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Me returns the current session's user, 401 when there is none.
// GET /api/v1/auth/me
func (h *Handlers) Me(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		util.RespondUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           sess.UserID,
			"loginId":      sess.LoginID,
			"name":         sess.Nickname,
			"email":        sess.Email,
			"profileImage": sess.ProfileImage,
		},
		"expiresAt": sess.ExpiresAt,
	})
}

// KakaoLogin redirects the browser to Kakao's authorization page with a
// one-time CSRF state.
// GET /api/v1/auth/kakao
func (h *Handlers) KakaoLogin(c *gin.Context) {
	state := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.sessions.KakaoAuthURL(state))
}

// KakaoCallback exchanges the authorization code and establishes a session
// equivalent to credential login. Any failure sends the browser back to the
// login entry point with no session created.
// GET /api/v1/auth/kakao/callback
func (h *Handlers) KakaoCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	storedState, err := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)
	if code == "" || err != nil || state == "" || state != storedState {
		logger.Log.Warn("Kakao callback rejected",
			zap.Bool("missing_code", code == ""),
			zap.Bool("state_mismatch", state != storedState),
		)
		c.Redirect(http.StatusFound, h.loginRedirect)
		return
	}

	kakaoToken, err := h.sessions.ExchangeKakaoCode(c.Request.Context(), code)
	if err != nil {
		logger.Log.Warn("Kakao code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.loginRedirect)
		return
	}

	res, err := h.api.LoginWithKakao(c.Request.Context(), kakaoToken)
	if err != nil {
		logger.Log.Warn("Kakao backend login failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.loginRedirect)
		return
	}

	if _, err := h.sessions.Establish(c, res); err != nil {
		c.Redirect(http.StatusFound, h.loginRedirect)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// VerifyPassword re-checks the caller's password before sensitive reads.
// 401 without a session, 403 when the password does not match.
// POST /api/v1/auth/password/verify
func (h *Handlers) VerifyPassword(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		util.RespondUnauthorized(c)
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "비밀번호를 입력해 주세요")
		return
	}

	if err := h.api.VerifyPassword(c.Request.Context(), sess.AccessToken, req.Password); err != nil {
		if apiErr, ok := err.(*errors.APIError); ok && apiErr.Code == errors.ErrUpstream && apiErr.Status < http.StatusInternalServerError {
			util.RespondForbidden(c, "비밀번호가 일치하지 않습니다")
			return
		}
		util.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}
