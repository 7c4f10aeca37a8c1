package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mixit-kr/gateway/internal/logger"
	"github.com/mixit-kr/gateway/internal/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	logger.SugaredLog = logger.Log.Sugar()
	metrics.Initialize()
	m.Run()
}

func TestRequestIDGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		id, exists := c.Get("request_id")
		assert.True(t, exists)
		assert.NotEmpty(t, id)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "caller-supplied-id", w.Header().Get("X-Request-ID"))
}

// Without a configured Redis client the rate limiter must be a pass-through,
// not a closed gate - development runs without Redis.
func TestRateLimitPassThroughWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(RedisRateLimitMiddleware(1, time.Minute))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestResponseCachePassThroughWithoutRedis(t *testing.T) {
	hits := 0
	r := gin.New()
	r.Use(ResponseCacheMiddleware(time.Minute, "mixit_session"))
	r.GET("/home", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/home", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 2, hits, "without Redis every request reaches the handler")
}

func TestResponseCacheSkipsNonGET(t *testing.T) {
	r := gin.New()
	r.Use(ResponseCacheMiddleware(time.Minute, "mixit_session"))
	r.POST("/home", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/home", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestCacheKeyVariesWithSession(t *testing.T) {
	anon := generateCacheKey("/home/tags", "size=10", "")
	userA := generateCacheKey("/home/tags", "size=10", "cookie-a")
	userB := generateCacheKey("/home/tags", "size=10", "cookie-b")

	assert.NotEqual(t, anon, userA)
	assert.NotEqual(t, userA, userB)
}

func TestMetricsMiddlewareCounts(t *testing.T) {
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/posts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/posts/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
