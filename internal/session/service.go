package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/mixit-kr/gateway/internal/config"
	"github.com/mixit-kr/gateway/internal/upstream"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrInvalidSession = errors.New("invalid session token")
)

const contextKey = "session"

// Session is the authenticated caller's identity plus the backend bearer
// token, carried in a signed cookie. The gateway never stores it server-side;
// each request decodes the cookie fresh.
type Session struct {
	UserID       string
	LoginID      string
	Nickname     string
	Email        string
	ProfileImage string
	AccessToken  string
	ExpiresAt    time.Time
}

// Service issues and validates session cookies and runs the Kakao OAuth
// exchange.
type Service struct {
	secret       []byte
	cookieName   string
	cookieDomain string
	secure       bool
	kakao        *oauth2.Config
}

// NewService creates the session service from gateway configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:       []byte(cfg.SessionSecret),
		cookieName:   cfg.CookieName,
		cookieDomain: cfg.CookieDomain,
		secure:       cfg.CookieSecure,
		kakao: &oauth2.Config{
			ClientID:     cfg.KakaoClientID,
			ClientSecret: cfg.KakaoClientSecret,
			RedirectURL:  cfg.KakaoRedirectURL,
			Scopes:       []string{"profile_nickname", "profile_image", "account_email"},
			Endpoint:     kakaoEndpoint,
		},
	}
}

// Establish signs a session cookie for a successful authentication result.
// The cookie lifetime follows the backend token's validity.
func (s *Service) Establish(c *gin.Context, res *upstream.AuthResult) (*Session, error) {
	expiresIn := res.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	expiresAt := time.Now().Add(time.Duration(expiresIn) * time.Second)

	claims := jwt.MapClaims{
		"user_id":       res.UserID,
		"login_id":      res.LoginID,
		"nickname":      res.Nickname,
		"email":         res.Email,
		"profile_image": res.ProfileImage,
		"access_token":  res.Token,
		"exp":           expiresAt.Unix(),
		"iat":           time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, signed, expiresIn, "/", s.cookieDomain, s.secure, true)

	return &Session{
		UserID:       res.UserID,
		LoginID:      res.LoginID,
		Nickname:     res.Nickname,
		Email:        res.Email,
		ProfileImage: res.ProfileImage,
		AccessToken:  res.Token,
		ExpiresAt:    expiresAt,
	}, nil
}

// Clear removes the session cookie
func (s *Service) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, "", -1, "/", s.cookieDomain, s.secure, true)
}

// FromRequest decodes the session cookie without touching the network.
func (s *Service) FromRequest(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(s.cookieName)
	if err != nil || raw == "" {
		return nil, ErrNoSession
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	sess := &Session{
		UserID:       stringClaim(claims, "user_id"),
		LoginID:      stringClaim(claims, "login_id"),
		Nickname:     stringClaim(claims, "nickname"),
		Email:        stringClaim(claims, "email"),
		ProfileImage: stringClaim(claims, "profile_image"),
		AccessToken:  stringClaim(claims, "access_token"),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	if sess.AccessToken == "" {
		return nil, ErrInvalidSession
	}
	return sess, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// RequireSession rejects unauthenticated requests with 401 before any
// backend call is attempted.
func (s *Service) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.FromRequest(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "로그인이 필요합니다"})
			c.Abort()
			return
		}
		c.Set(contextKey, sess)
		c.Next()
	}
}

// OptionalSession attaches the session when present and lets anonymous
// requests through. Public reads degrade rather than fail.
func (s *Service) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, err := s.FromRequest(c); err == nil {
			c.Set(contextKey, sess)
		}
		c.Next()
	}
}

// Current returns the session attached by the middleware, nil when absent.
func Current(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess
		}
	}
	return nil
}

// Token returns the caller's bearer token, empty for anonymous requests.
func Token(c *gin.Context) string {
	if sess := Current(c); sess != nil {
		return sess.AccessToken
	}
	return ""
}
