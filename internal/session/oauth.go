package session

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Kakao OAuth endpoints
var kakaoEndpoint = oauth2.Endpoint{
	AuthURL:  "https://kauth.kakao.com/oauth/authorize",
	TokenURL: "https://kauth.kakao.com/oauth/token",
}

// KakaoAuthURL returns the Kakao authorization URL. state is a one-time
// CSRF token the callback handler checks against its cookie.
func (s *Service) KakaoAuthURL(state string) string {
	return s.kakao.AuthCodeURL(state)
}

// ExchangeKakaoCode trades the authorization code for a Kakao access token.
// The Kakao token is then handed to the backend, which owns the actual
// account lookup and Mixit token issuance.
func (s *Service) ExchangeKakaoCode(ctx context.Context, code string) (string, error) {
	tok, err := s.kakao.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("kakao code exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}
