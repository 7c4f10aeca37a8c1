package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mixit-kr/gateway/internal/errors"
	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/util"
)

// Post images top out well below this; anything bigger is a mistake, not a
// photo.
const maxImageBytes = 10 << 20

// UploadImage accepts a single PNG or JPEG, buffers it, and re-encodes it as
// multipart for the backend. The MIME type is sniffed from the first bytes
// rather than trusted from the part header; anything else is rejected with
// 415 before the backend is contacted.
// POST /api/v1/images
func (h *Handlers) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		util.RespondBadRequest(c, "이미지를 선택해 주세요")
		return
	}
	if fileHeader.Size > maxImageBytes {
		util.RespondValidationError(c, "image", "이미지 크기는 10MB 이하여야 합니다")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.RespondInternalError(c, "이미지를 읽지 못했습니다")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		util.RespondInternalError(c, "이미지를 읽지 못했습니다")
		return
	}
	if len(data) > maxImageBytes {
		util.RespondValidationError(c, "image", "이미지 크기는 10MB 이하여야 합니다")
		return
	}

	contentType := http.DetectContentType(data)
	if contentType != "image/png" && contentType != "image/jpeg" {
		util.RespondWithAPIError(c, errors.UnsupportedMedia("PNG 또는 JPEG 이미지만 업로드할 수 있습니다"))
		return
	}

	result, err := h.api.UploadImage(c.Request.Context(), session.Token(c), fileHeader.Filename, contentType, data)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
