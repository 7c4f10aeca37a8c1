package upstream

import (
	"context"
	"encoding/json"
	"io"
)

// API defines the backend operations used by handlers and the client
// library. Handlers depend on this rather than *Client so tests can swap in
// MockAPI without a running backend.
type API interface {
	// Auth
	Login(ctx context.Context, loginID, password string) (*AuthResult, error)
	LoginWithKakao(ctx context.Context, kakaoToken string) (*AuthResult, error)
	VerifyPassword(ctx context.Context, token, password string) error

	// Accounts
	Signup(ctx context.Context, body map[string]interface{}) (json.RawMessage, error)
	CheckDuplicate(ctx context.Context, field, value string) (*DuplicateResult, error)
	RequestEmailVerification(ctx context.Context, email string) error
	ConfirmEmailVerification(ctx context.Context, email, code string) error
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, token string) error

	// Posts
	ListPosts(ctx context.Context, token string, page, size int, sort string) (*Page, error)
	GetPost(ctx context.Context, token, id string) (json.RawMessage, error)
	CreatePost(ctx context.Context, token string, body json.RawMessage) (json.RawMessage, error)
	UpdatePost(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error)
	DeletePost(ctx context.Context, token, id string) error
	SearchPosts(ctx context.Context, token, keyword string, page, size int, sort string) (*Page, error)
	CountView(ctx context.Context, id string) error

	// Reviews
	ListReviews(ctx context.Context, token, postID string, page, size int) (*Page, error)
	CreateReview(ctx context.Context, token, postID string, body json.RawMessage) (json.RawMessage, error)
	UpdateReview(ctx context.Context, token, postID, reviewID string, body json.RawMessage) (json.RawMessage, error)
	DeleteReview(ctx context.Context, token, postID, reviewID string) error

	// Reactions
	LikePost(ctx context.Context, token, postID string) error
	UnlikePost(ctx context.Context, token, postID string) error
	BookmarkPost(ctx context.Context, token, postID string) error
	UnbookmarkPost(ctx context.Context, token, postID string) error
	GetRating(ctx context.Context, token, postID string) (json.RawMessage, error)
	RatePost(ctx context.Context, token, postID string, rating float64) (json.RawMessage, error)

	// Home
	CategoryFeed(ctx context.Context, token, category string, page, size int) (*Page, error)
	PopularCombos(ctx context.Context, token string, size int) (json.RawMessage, error)
	TodayRecommendations(ctx context.Context, token string, size int) (json.RawMessage, error)
	Tags(ctx context.Context, token string, size int) (json.RawMessage, error)
	PopularTags(ctx context.Context, token string, size int) (json.RawMessage, error)

	// Images
	UploadImage(ctx context.Context, token, filename, contentType string, data []byte) (*ImageResult, error)

	// Notifications
	Notifications(ctx context.Context, token string, page, size int) (*Page, error)
	MarkNotificationRead(ctx context.Context, token, id string) error
	Subscribe(ctx context.Context, token string) (io.ReadCloser, error)
}

// Compile-time check that Client satisfies API
var _ API = (*Client)(nil)
