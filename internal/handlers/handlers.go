package handlers

import (
	"github.com/mixit-kr/gateway/internal/config"
	"github.com/mixit-kr/gateway/internal/session"
	"github.com/mixit-kr/gateway/internal/upstream"
)

// Default page sizes per resource
const (
	defaultPostPageSize         = 20
	defaultReviewPageSize       = 10
	defaultSearchPageSize       = 20
	defaultCategoryPageSize     = 20
	defaultNotificationPageSize = 20
	defaultComboCount           = 5
	defaultTodayCount           = 3
	defaultTagCount             = 10
)

// Handlers contains all HTTP handlers for the gateway. Each handler resolves
// the caller's session, forwards to the backend with the bearer token
// attached, and reshapes the response. No state is kept across requests.
type Handlers struct {
	api           upstream.API
	sessions      *session.Service
	loginRedirect string
}

// NewHandlers creates a new handlers instance
func NewHandlers(api upstream.API, sessions *session.Service, cfg *config.Config) *Handlers {
	loginRedirect := "/login"
	if cfg != nil && cfg.LoginRedirectURL != "" {
		loginRedirect = cfg.LoginRedirectURL
	}
	return &Handlers{
		api:           api,
		sessions:      sessions,
		loginRedirect: loginRedirect,
	}
}
