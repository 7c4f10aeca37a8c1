package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/util"
)

// duplicateMessages maps each signup field to the message the form shows
// under that input on collision.
var duplicateMessages = map[string]string{
	"loginId":  "이미 사용 중인 아이디입니다",
	"nickname": "이미 사용 중인 닉네임입니다",
	"email":    "이미 사용 중인 이메일입니다",
}

// SignupRequest represents a registration request
type SignupRequest struct {
	LoginID  string `json:"loginId" binding:"required,min=4,max=20"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname" binding:"required,min=2,max=20"`
	Email    string `json:"email" binding:"required,email"`
}

// Signup forwards a registration. Email verification gating is enforced by
// the backend; the gateway only checks presence and shape.
// POST /api/v1/accounts/signup
func (h *Handlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "가입 정보를 확인해 주세요")
		return
	}

	data, err := h.api.Signup(c.Request.Context(), map[string]interface{}{
		"loginId":  req.LoginID,
		"password": req.Password,
		"nickname": req.Nickname,
		"email":    req.Email,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, data)
}

// CheckDuplicate reports whether a signup field value is taken. The response
// names exactly the field the caller submitted so the form targets the right
// input with the right message.
// POST /api/v1/accounts/duplicate
func (h *Handlers) CheckDuplicate(c *gin.Context) {
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "확인할 값을 입력해 주세요")
		return
	}
	if _, ok := duplicateMessages[req.Field]; !ok {
		util.RespondBadRequest(c, "확인할 수 없는 항목입니다")
		return
	}

	res, err := h.api.CheckDuplicate(c.Request.Context(), req.Field, req.Value)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	if res.Available {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"field":   req.Field,
		"message": duplicateMessages[req.Field],
	})
}

// RequestEmailVerification asks the backend to send a verification mail.
// POST /api/v1/accounts/email/verify-request
func (h *Handlers) RequestEmailVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "이메일을 입력해 주세요")
		return
	}

	if err := h.api.RequestEmailVerification(c.Request.Context(), req.Email); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// ConfirmEmailVerification submits the mailed code.
// POST /api/v1/accounts/email/verify
func (h *Handlers) ConfirmEmailVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "인증 코드를 입력해 주세요")
		return
	}

	if err := h.api.ConfirmEmailVerification(c.Request.Context(), req.Email, req.Code); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// ChangePassword updates the caller's password. Requires a session.
// PUT /api/v1/accounts/password
func (h *Handlers) ChangePassword(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		util.RespondUnauthorized(c)
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "비밀번호를 확인해 주세요")
		return
	}

	if err := h.api.ChangePassword(c.Request.Context(), sess.AccessToken, req.CurrentPassword, req.NewPassword); err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": true})
}

// DeleteAccount removes the caller's account and clears the session.
// DELETE /api/v1/accounts
func (h *Handlers) DeleteAccount(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		util.RespondUnauthorized(c)
		return
	}

	if err := h.api.DeleteAccount(c.Request.Context(), sess.AccessToken); err != nil {
		util.RespondError(c, err)
		return
	}
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
