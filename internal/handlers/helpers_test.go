package handlers

import (
	"net/http"

	"github.com/mixit-kr/gateway/internal/errors"
)

// Canned backend errors shared across handler tests
var (
	apiErrUpstream401 = errors.APIError{
		Code:    errors.ErrUpstream,
		Message: "아이디 또는 비밀번호가 올바르지 않습니다",
		Status:  http.StatusUnauthorized,
	}
	apiErrUpstream400 = errors.APIError{
		Code:    errors.ErrUpstream,
		Message: "비밀번호가 일치하지 않습니다",
		Status:  http.StatusBadRequest,
	}
	apiErrNetwork = errors.APIError{
		Code:    errors.ErrNetwork,
		Message: "네트워크 오류가 발생했습니다",
		Status:  http.StatusInternalServerError,
	}
)
