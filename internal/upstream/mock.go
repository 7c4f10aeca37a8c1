package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MockCall records a method call for assertion
type MockCall struct {
	Method string
	Args   []interface{}
}

// MockAPI is a mock implementation of API for testing. Configure responses
// per method through the Func fields; every call is recorded so tests can
// assert which backend operations ran (or that none did).
type MockAPI struct {
	mu    sync.Mutex
	Calls []MockCall

	LoginFunc                    func(loginID, password string) (*AuthResult, error)
	LoginWithKakaoFunc           func(kakaoToken string) (*AuthResult, error)
	VerifyPasswordFunc           func(token, password string) error
	SignupFunc                   func(body map[string]interface{}) (json.RawMessage, error)
	CheckDuplicateFunc           func(field, value string) (*DuplicateResult, error)
	RequestEmailVerificationFunc func(email string) error
	ConfirmEmailVerificationFunc func(email, code string) error
	ChangePasswordFunc           func(token, currentPassword, newPassword string) error
	DeleteAccountFunc            func(token string) error
	ListPostsFunc                func(token string, page, size int, sort string) (*Page, error)
	GetPostFunc                  func(token, id string) (json.RawMessage, error)
	CreatePostFunc               func(token string, body json.RawMessage) (json.RawMessage, error)
	UpdatePostFunc               func(token, id string, body json.RawMessage) (json.RawMessage, error)
	DeletePostFunc               func(token, id string) error
	SearchPostsFunc              func(token, keyword string, page, size int, sort string) (*Page, error)
	CountViewFunc                func(id string) error
	ListReviewsFunc              func(token, postID string, page, size int) (*Page, error)
	CreateReviewFunc             func(token, postID string, body json.RawMessage) (json.RawMessage, error)
	UpdateReviewFunc             func(token, postID, reviewID string, body json.RawMessage) (json.RawMessage, error)
	DeleteReviewFunc             func(token, postID, reviewID string) error
	LikePostFunc                 func(token, postID string) error
	UnlikePostFunc               func(token, postID string) error
	BookmarkPostFunc             func(token, postID string) error
	UnbookmarkPostFunc           func(token, postID string) error
	GetRatingFunc                func(token, postID string) (json.RawMessage, error)
	RatePostFunc                 func(token, postID string, rating float64) (json.RawMessage, error)
	CategoryFeedFunc             func(token, category string, page, size int) (*Page, error)
	PopularCombosFunc            func(token string, size int) (json.RawMessage, error)
	TodayRecommendationsFunc     func(token string, size int) (json.RawMessage, error)
	TagsFunc                     func(token string, size int) (json.RawMessage, error)
	PopularTagsFunc              func(token string, size int) (json.RawMessage, error)
	UploadImageFunc              func(token, filename, contentType string, data []byte) (*ImageResult, error)
	NotificationsFunc            func(token string, page, size int) (*Page, error)
	MarkNotificationReadFunc     func(token, id string) error
	SubscribeFunc                func(token string) (io.ReadCloser, error)
}

var _ API = (*MockAPI)(nil)

func (m *MockAPI) record(method string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

// CallCount returns how many times method was called
func (m *MockAPI) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// TotalCalls returns the number of recorded backend calls
func (m *MockAPI) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockAPI) Login(_ context.Context, loginID, password string) (*AuthResult, error) {
	m.record("Login", loginID, password)
	if m.LoginFunc != nil {
		return m.LoginFunc(loginID, password)
	}
	return nil, fmt.Errorf("Login not configured")
}

func (m *MockAPI) LoginWithKakao(_ context.Context, kakaoToken string) (*AuthResult, error) {
	m.record("LoginWithKakao", kakaoToken)
	if m.LoginWithKakaoFunc != nil {
		return m.LoginWithKakaoFunc(kakaoToken)
	}
	return nil, fmt.Errorf("LoginWithKakao not configured")
}

func (m *MockAPI) VerifyPassword(_ context.Context, token, password string) error {
	m.record("VerifyPassword", token, password)
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(token, password)
	}
	return nil
}

func (m *MockAPI) Signup(_ context.Context, body map[string]interface{}) (json.RawMessage, error) {
	m.record("Signup", body)
	if m.SignupFunc != nil {
		return m.SignupFunc(body)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockAPI) CheckDuplicate(_ context.Context, field, value string) (*DuplicateResult, error) {
	m.record("CheckDuplicate", field, value)
	if m.CheckDuplicateFunc != nil {
		return m.CheckDuplicateFunc(field, value)
	}
	return &DuplicateResult{Available: true, Field: field}, nil
}

func (m *MockAPI) RequestEmailVerification(_ context.Context, email string) error {
	m.record("RequestEmailVerification", email)
	if m.RequestEmailVerificationFunc != nil {
		return m.RequestEmailVerificationFunc(email)
	}
	return nil
}

func (m *MockAPI) ConfirmEmailVerification(_ context.Context, email, code string) error {
	m.record("ConfirmEmailVerification", email, code)
	if m.ConfirmEmailVerificationFunc != nil {
		return m.ConfirmEmailVerificationFunc(email, code)
	}
	return nil
}

func (m *MockAPI) ChangePassword(_ context.Context, token, currentPassword, newPassword string) error {
	m.record("ChangePassword", token, currentPassword, newPassword)
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(token, currentPassword, newPassword)
	}
	return nil
}

func (m *MockAPI) DeleteAccount(_ context.Context, token string) error {
	m.record("DeleteAccount", token)
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(token)
	}
	return nil
}

func (m *MockAPI) ListPosts(_ context.Context, token string, page, size int, sort string) (*Page, error) {
	m.record("ListPosts", token, page, size, sort)
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(token, page, size, sort)
	}
	return emptyPage(page, size), nil
}

func (m *MockAPI) GetPost(_ context.Context, token, id string) (json.RawMessage, error) {
	m.record("GetPost", token, id)
	if m.GetPostFunc != nil {
		return m.GetPostFunc(token, id)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockAPI) CreatePost(_ context.Context, token string, body json.RawMessage) (json.RawMessage, error) {
	m.record("CreatePost", token, body)
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(token, body)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockAPI) UpdatePost(_ context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	m.record("UpdatePost", token, id, body)
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(token, id, body)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockAPI) DeletePost(_ context.Context, token, id string) error {
	m.record("DeletePost", token, id)
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(token, id)
	}
	return nil
}

func (m *MockAPI) SearchPosts(_ context.Context, token, keyword string, page, size int, sort string) (*Page, error) {
	m.record("SearchPosts", token, keyword, page, size, sort)
	if m.SearchPostsFunc != nil {
		return m.SearchPostsFunc(token, keyword, page, size, sort)
	}
	return emptyPage(page, size), nil
}

func (m *MockAPI) CountView(_ context.Context, id string) error {
	m.record("CountView", id)
	if m.CountViewFunc != nil {
		return m.CountViewFunc(id)
	}
	return nil
}

func (m *MockAPI) ListReviews(_ context.Context, token, postID string, page, size int) (*Page, error) {
	m.record("ListReviews", token, postID, page, size)
	if m.ListReviewsFunc != nil {
		return m.ListReviewsFunc(token, postID, page, size)
	}
	return emptyPage(page, size), nil
}

func (m *MockAPI) CreateReview(_ context.Context, token, postID string, body json.RawMessage) (json.RawMessage, error) {
	m.record("CreateReview", token, postID, body)
	if m.CreateReviewFunc != nil {
		return m.CreateReviewFunc(token, postID, body)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockAPI) UpdateReview(_ context.Context, token, postID, reviewID string, body json.RawMessage) (json.RawMessage, error) {
	m.record("UpdateReview", token, postID, reviewID, body)
	if m.UpdateReviewFunc != nil {
		return m.UpdateReviewFunc(token, postID, reviewID, body)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockAPI) DeleteReview(_ context.Context, token, postID, reviewID string) error {
	m.record("DeleteReview", token, postID, reviewID)
	if m.DeleteReviewFunc != nil {
		return m.DeleteReviewFunc(token, postID, reviewID)
	}
	return nil
}

func (m *MockAPI) LikePost(_ context.Context, token, postID string) error {
	m.record("LikePost", token, postID)
	if m.LikePostFunc != nil {
		return m.LikePostFunc(token, postID)
	}
	return nil
}

func (m *MockAPI) UnlikePost(_ context.Context, token, postID string) error {
	m.record("UnlikePost", token, postID)
	if m.UnlikePostFunc != nil {
		return m.UnlikePostFunc(token, postID)
	}
	return nil
}

func (m *MockAPI) BookmarkPost(_ context.Context, token, postID string) error {
	m.record("BookmarkPost", token, postID)
	if m.BookmarkPostFunc != nil {
		return m.BookmarkPostFunc(token, postID)
	}
	return nil
}

func (m *MockAPI) UnbookmarkPost(_ context.Context, token, postID string) error {
	m.record("UnbookmarkPost", token, postID)
	if m.UnbookmarkPostFunc != nil {
		return m.UnbookmarkPostFunc(token, postID)
	}
	return nil
}

func (m *MockAPI) GetRating(_ context.Context, token, postID string) (json.RawMessage, error) {
	m.record("GetRating", token, postID)
	if m.GetRatingFunc != nil {
		return m.GetRatingFunc(token, postID)
	}
	return json.RawMessage(`{"averageRating":0,"ratingCount":0}`), nil
}

func (m *MockAPI) RatePost(_ context.Context, token, postID string, rating float64) (json.RawMessage, error) {
	m.record("RatePost", token, postID, rating)
	if m.RatePostFunc != nil {
		return m.RatePostFunc(token, postID, rating)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockAPI) CategoryFeed(_ context.Context, token, category string, page, size int) (*Page, error) {
	m.record("CategoryFeed", token, category, page, size)
	if m.CategoryFeedFunc != nil {
		return m.CategoryFeedFunc(token, category, page, size)
	}
	return emptyPage(page, size), nil
}

func (m *MockAPI) PopularCombos(_ context.Context, token string, size int) (json.RawMessage, error) {
	m.record("PopularCombos", token, size)
	if m.PopularCombosFunc != nil {
		return m.PopularCombosFunc(token, size)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockAPI) TodayRecommendations(_ context.Context, token string, size int) (json.RawMessage, error) {
	m.record("TodayRecommendations", token, size)
	if m.TodayRecommendationsFunc != nil {
		return m.TodayRecommendationsFunc(token, size)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockAPI) Tags(_ context.Context, token string, size int) (json.RawMessage, error) {
	m.record("Tags", token, size)
	if m.TagsFunc != nil {
		return m.TagsFunc(token, size)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockAPI) PopularTags(_ context.Context, token string, size int) (json.RawMessage, error) {
	m.record("PopularTags", token, size)
	if m.PopularTagsFunc != nil {
		return m.PopularTagsFunc(token, size)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockAPI) UploadImage(_ context.Context, token, filename, contentType string, data []byte) (*ImageResult, error) {
	m.record("UploadImage", token, filename, contentType, data)
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(token, filename, contentType, data)
	}
	return &ImageResult{ID: "img-1", URL: "https://cdn.example.com/img-1"}, nil
}

func (m *MockAPI) Notifications(_ context.Context, token string, page, size int) (*Page, error) {
	m.record("Notifications", token, page, size)
	if m.NotificationsFunc != nil {
		return m.NotificationsFunc(token, page, size)
	}
	return emptyPage(page, size), nil
}

func (m *MockAPI) MarkNotificationRead(_ context.Context, token, id string) error {
	m.record("MarkNotificationRead", token, id)
	if m.MarkNotificationReadFunc != nil {
		return m.MarkNotificationReadFunc(token, id)
	}
	return nil
}

func (m *MockAPI) Subscribe(_ context.Context, token string) (io.ReadCloser, error) {
	m.record("Subscribe", token)
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(token)
	}
	return io.NopCloser(strings.NewReader("")), nil
}

func emptyPage(page, size int) *Page {
	p := &Page{Page: page, Size: size, TotalPages: 0, TotalElements: 0, Content: json.RawMessage(`[]`)}
	p.AttachNextPage()
	return p
}
