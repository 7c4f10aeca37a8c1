package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apierrors "github.com/mixit-kr/gateway/internal/errors"
	"github.com/mixit-kr/gateway/internal/logger"
	"github.com/mixit-kr/gateway/internal/metrics"
)

// Client talks to the Mixit backend API. It is the only component that sees
// the backend's {status, data} envelope; everything it returns is already
// unwrapped. All calls are stateless - the caller's bearer token is passed
// per request and never stored.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
	serviceToken string
	limiter      *rate.Limiter
}

// NewClient creates a backend API client. The stream client has no timeout
// so notification subscriptions can stay open until either side closes them.
func NewClient(baseURL, serviceToken string, timeout time.Duration, rps float64, burst int) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL must be set")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	transport := otelhttp.NewTransport(http.DefaultTransport)

	if rps <= 0 {
		rps = 100
	}
	if burst <= 0 {
		burst = int(rps) * 2
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Transport: transport, Timeout: timeout},
		streamClient: &http.Client{Transport: transport},
		serviceToken: serviceToken,
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// ServiceToken returns the shared token used for public home/tag reads when
// the caller has no session of their own.
func (c *Client) ServiceToken() string {
	return c.serviceToken
}

// metricPath collapses numeric path segments so per-post routes share one
// label value instead of exploding the series cardinality.
func metricPath(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}

// outcome classifies an error for the upstream call counter.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case apierrors.ErrUpstream:
			return "upstream"
		case apierrors.ErrNetwork:
			return "network"
		}
	}
	return "error"
}

func observe(operation string, start time.Time, err error) {
	m := metrics.Get()
	m.UpstreamRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
	m.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// do performs one backend call and unwraps the envelope. Transport failures
// and unparsable bodies become Network errors; backend non-2xx responses are
// relayed as Upstream errors carrying the backend's status and message.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body io.Reader, contentType, fallback string) (data json.RawMessage, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apierrors.Network(fallback)
	}
	op := method + " " + metricPath(path)
	start := time.Now()
	defer func() { observe(op, start, err) }()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, apierrors.InternalError(err.Error())
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, apierrors.Network(fallback)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.Network(fallback)
	}

	var env Envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= http.StatusBadRequest {
				return nil, apierrors.Upstream(resp.StatusCode, fallback)
			}
			return nil, apierrors.Network(fallback)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := env.Status.Message
		if msg == "" {
			msg = fallback
		}
		return nil, apierrors.Upstream(resp.StatusCode, msg)
	}

	return env.Data, nil
}

// doJSON marshals body (when non-nil) and performs the call.
func (c *Client) doJSON(ctx context.Context, method, path, token string, query url.Values, body interface{}, fallback string) (json.RawMessage, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, apierrors.InternalError(err.Error())
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, query, reader, contentType, fallback)
}

// doPage performs a list call and reshapes the response into a Page with the
// nextPage cursor attached.
func (c *Client) doPage(ctx context.Context, path, token string, query url.Values, fallback string) (*Page, error) {
	data, err := c.do(ctx, http.MethodGet, path, token, query, nil, "", fallback)
	if err != nil {
		return nil, err
	}
	page, err := decodePage(data)
	if err != nil {
		return nil, apierrors.Network(fallback)
	}
	return page, nil
}

func pageQuery(page, size int, sort string) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("size", fmt.Sprintf("%d", size))
	if sort != "" {
		q.Set("sort", sort)
	}
	return q
}

// ---- auth -------------------------------------------------------------

// Login authenticates with loginId/password. Backend rejections come back
// as Upstream errors with the backend's message verbatim, so "wrong
// password" is distinguishable from "service unavailable".
func (c *Client) Login(ctx context.Context, loginID, password string) (*AuthResult, error) {
	data, err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", nil,
		map[string]string{"loginId": loginID, "password": password},
		"로그인에 실패했습니다")
	if err != nil {
		return nil, err
	}
	var res AuthResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, apierrors.Network("로그인에 실패했습니다")
	}
	return &res, nil
}

// LoginWithKakao exchanges a Kakao access token for a Mixit session token.
func (c *Client) LoginWithKakao(ctx context.Context, kakaoToken string) (*AuthResult, error) {
	data, err := c.doJSON(ctx, http.MethodPost, "/auth/oauth/kakao", "", nil,
		map[string]string{"accessToken": kakaoToken},
		"카카오 로그인에 실패했습니다")
	if err != nil {
		return nil, err
	}
	var res AuthResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, apierrors.Network("카카오 로그인에 실패했습니다")
	}
	return &res, nil
}

// VerifyPassword re-checks the caller's password before sensitive reads.
func (c *Client) VerifyPassword(ctx context.Context, token, password string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/password/verify", token, nil,
		map[string]string{"password": password},
		"비밀번호 확인에 실패했습니다")
	return err
}

// ---- accounts ---------------------------------------------------------

func (c *Client) Signup(ctx context.Context, body map[string]interface{}) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/accounts/signup", "", nil, body,
		"회원가입에 실패했습니다")
}

// CheckDuplicate asks the backend whether field (loginId, nickname or email)
// already holds value.
func (c *Client) CheckDuplicate(ctx context.Context, field, value string) (*DuplicateResult, error) {
	data, err := c.doJSON(ctx, http.MethodPost, "/accounts/duplicate", "", nil,
		map[string]string{"field": field, "value": value},
		"중복 확인에 실패했습니다")
	if err != nil {
		return nil, err
	}
	var res DuplicateResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, apierrors.Network("중복 확인에 실패했습니다")
	}
	res.Field = field
	return &res, nil
}

func (c *Client) RequestEmailVerification(ctx context.Context, email string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/accounts/email/verify-request", "", nil,
		map[string]string{"email": email},
		"인증 메일 발송에 실패했습니다")
	return err
}

func (c *Client) ConfirmEmailVerification(ctx context.Context, email, code string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/accounts/email/verify", "", nil,
		map[string]string{"email": email, "code": code},
		"이메일 인증에 실패했습니다")
	return err
}

func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	_, err := c.doJSON(ctx, http.MethodPut, "/accounts/password", token, nil,
		map[string]string{"currentPassword": currentPassword, "newPassword": newPassword},
		"비밀번호 변경에 실패했습니다")
	return err
}

func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/accounts", token, nil, nil,
		"회원 탈퇴에 실패했습니다")
	return err
}

// ---- posts ------------------------------------------------------------

func (c *Client) ListPosts(ctx context.Context, token string, page, size int, sort string) (*Page, error) {
	return c.doPage(ctx, "/posts", token, pageQuery(page, size, sort),
		"게시글 목록을 불러오지 못했습니다")
}

func (c *Client) GetPost(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/posts/"+id, token, nil, nil, "",
		"게시글을 불러오지 못했습니다")
}

func (c *Client) CreatePost(ctx context.Context, token string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/posts", token, nil, bytes.NewReader(body),
		"application/json", "게시글 작성에 실패했습니다")
}

func (c *Client) UpdatePost(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, "/posts/"+id, token, nil, bytes.NewReader(body),
		"application/json", "게시글 수정에 실패했습니다")
}

func (c *Client) DeletePost(ctx context.Context, token, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/posts/"+id, token, nil, nil,
		"게시글 삭제에 실패했습니다")
	return err
}

func (c *Client) SearchPosts(ctx context.Context, token, keyword string, page, size int, sort string) (*Page, error) {
	q := pageQuery(page, size, sort)
	q.Set("keyword", keyword)
	return c.doPage(ctx, "/posts/search", token, q,
		"검색 결과를 불러오지 못했습니다")
}

// CountView records a post view. Uses the service token path; the browser
// never holds a credential for this.
func (c *Client) CountView(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/posts/"+id+"/views", c.serviceToken, nil, nil,
		"조회수 기록에 실패했습니다")
	return err
}

// ---- reviews ----------------------------------------------------------

func (c *Client) ListReviews(ctx context.Context, token, postID string, page, size int) (*Page, error) {
	return c.doPage(ctx, "/posts/"+postID+"/reviews", token, pageQuery(page, size, "createdAt"),
		"리뷰를 불러오지 못했습니다")
}

func (c *Client) CreateReview(ctx context.Context, token, postID string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/posts/"+postID+"/reviews", token, nil,
		bytes.NewReader(body), "application/json", "리뷰 작성에 실패했습니다")
}

func (c *Client) UpdateReview(ctx context.Context, token, postID, reviewID string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, "/posts/"+postID+"/reviews/"+reviewID, token, nil,
		bytes.NewReader(body), "application/json", "리뷰 수정에 실패했습니다")
}

func (c *Client) DeleteReview(ctx context.Context, token, postID, reviewID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/posts/"+postID+"/reviews/"+reviewID, token, nil, nil,
		"리뷰 삭제에 실패했습니다")
	return err
}

// ---- reactions --------------------------------------------------------

func (c *Client) LikePost(ctx context.Context, token, postID string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/posts/"+postID+"/like", token, nil, nil,
		"좋아요에 실패했습니다")
	return err
}

func (c *Client) UnlikePost(ctx context.Context, token, postID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/posts/"+postID+"/like", token, nil, nil,
		"좋아요 취소에 실패했습니다")
	return err
}

func (c *Client) BookmarkPost(ctx context.Context, token, postID string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/posts/"+postID+"/bookmark", token, nil, nil,
		"북마크에 실패했습니다")
	return err
}

func (c *Client) UnbookmarkPost(ctx context.Context, token, postID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/posts/"+postID+"/bookmark", token, nil, nil,
		"북마크 취소에 실패했습니다")
	return err
}

func (c *Client) GetRating(ctx context.Context, token, postID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/posts/"+postID+"/rate", token, nil, nil, "",
		"별점을 불러오지 못했습니다")
}

func (c *Client) RatePost(ctx context.Context, token, postID string, rating float64) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/posts/"+postID+"/rate", token, nil,
		map[string]float64{"rating": rating}, "별점 등록에 실패했습니다")
}

// ---- home -------------------------------------------------------------

// authOrService falls back to the shared service token for public reads so
// anonymous visitors still see the home feeds.
func (c *Client) authOrService(token string) string {
	if token != "" {
		return token
	}
	return c.serviceToken
}

func (c *Client) CategoryFeed(ctx context.Context, token, category string, page, size int) (*Page, error) {
	return c.doPage(ctx, "/home/category/"+category, c.authOrService(token),
		pageQuery(page, size, "createdAt"), "카테고리 목록을 불러오지 못했습니다")
}

func (c *Client) PopularCombos(ctx context.Context, token string, size int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%d", size))
	return c.do(ctx, http.MethodGet, "/home/popular/combos", c.authOrService(token), q, nil, "",
		"인기 조합을 불러오지 못했습니다")
}

func (c *Client) TodayRecommendations(ctx context.Context, token string, size int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%d", size))
	return c.do(ctx, http.MethodGet, "/home/recommendations/today", c.authOrService(token), q, nil, "",
		"오늘의 추천을 불러오지 못했습니다")
}

func (c *Client) Tags(ctx context.Context, token string, size int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%d", size))
	return c.do(ctx, http.MethodGet, "/home/tags", c.authOrService(token), q, nil, "",
		"태그를 불러오지 못했습니다")
}

func (c *Client) PopularTags(ctx context.Context, token string, size int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%d", size))
	return c.do(ctx, http.MethodGet, "/home/tags/popular", c.authOrService(token), q, nil, "",
		"인기 태그를 불러오지 못했습니다")
}

// ---- images -----------------------------------------------------------

// UploadImage re-encodes the buffered image as multipart form data and
// forwards it. MIME validation happens in the handler before this is called.
func (c *Client) UploadImage(ctx context.Context, token, filename, contentType string, data []byte) (*ImageResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename)}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, apierrors.InternalError(err.Error())
	}
	if _, err := part.Write(data); err != nil {
		return nil, apierrors.InternalError(err.Error())
	}
	if err := mw.Close(); err != nil {
		return nil, apierrors.InternalError(err.Error())
	}

	raw, err := c.do(ctx, http.MethodPost, "/images", token, nil, &buf,
		mw.FormDataContentType(), "이미지 업로드에 실패했습니다")
	if err != nil {
		return nil, err
	}
	var res ImageResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, apierrors.Network("이미지 업로드에 실패했습니다")
	}
	return &res, nil
}

// ---- notifications ----------------------------------------------------

func (c *Client) Notifications(ctx context.Context, token string, page, size int) (*Page, error) {
	return c.doPage(ctx, "/notifications", token, pageQuery(page, size, "createdAt"),
		"알림을 불러오지 못했습니다")
}

// MarkNotificationRead marks one notification read. The backend treats this
// as idempotent; a second call for the same id answers 2xx again.
func (c *Client) MarkNotificationRead(ctx context.Context, token, id string) error {
	_, err := c.doJSON(ctx, http.MethodPatch, "/notifications/read", token, nil,
		map[string]string{"id": id}, "알림 읽음 처리에 실패했습니다")
	return err
}

// Subscribe opens the backend's notification event stream. The returned body
// stays open until ctx is cancelled or the backend ends the stream; the
// caller owns closing it.
func (c *Client) Subscribe(ctx context.Context, token string) (body io.ReadCloser, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apierrors.Network("알림 구독에 실패했습니다")
	}
	start := time.Now()
	defer func() { observe("GET /notifications/subscribe", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/notifications/subscribe", nil)
	if err != nil {
		return nil, apierrors.InternalError(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, apierrors.Network("알림 구독에 실패했습니다")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, apierrors.Upstream(resp.StatusCode, "알림 구독에 실패했습니다")
	}
	return resp.Body, nil
}
