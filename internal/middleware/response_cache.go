package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mixit-kr/gateway/internal/cache"
	"github.com/mixit-kr/gateway/internal/logger"
)

// ResponseCacheMiddleware caches successful GET responses with a short TTL.
// Used on the public home/tag reads, which every visitor fetches and the
// backend recomputes identically. Only 2xx responses are stored. The key
// includes the session cookie hash so authenticated variants (hasLiked etc.)
// never leak across users. Adds X-Cache: HIT/MISS for debugging.
func ResponseCacheMiddleware(ttl time.Duration, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		redisClient := cache.GetRedisClient()
		if redisClient == nil {
			c.Next()
			return
		}

		sessionCookie, _ := c.Cookie(cookieName)
		cacheKey := generateCacheKey(c.Request.URL.Path, c.Request.URL.RawQuery, sessionCookie)
		ctx := c.Request.Context()

		if cachedData, err := redisClient.Get(ctx, cacheKey); err == nil {
			RecordCacheHit("response_cache")
			c.Header("X-Cache", "HIT")
			c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
			c.Data(http.StatusOK, "application/json", []byte(cachedData))
			c.Abort()
			return
		}
		RecordCacheMiss("response_cache")

		writer := &cachedResponseWriter{
			ResponseWriter: c.Writer,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 && writer.body.Len() > 0 {
			if err := redisClient.SetEx(ctx, cacheKey, writer.body.String(), ttl); err != nil {
				logger.Log.Debug("Failed to write response to cache",
					zap.String("key", cacheKey),
					zap.Error(err),
				)
			}
		}
	}
}

func generateCacheKey(path, query, sessionCookie string) string {
	h := sha256.Sum256([]byte(sessionCookie))
	return fmt.Sprintf("response:%s:%s:%s", path, query, hex.EncodeToString(h[:8]))
}

// cachedResponseWriter tees the response body so it can be stored after the
// handler runs.
type cachedResponseWriter struct {
	gin.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (w *cachedResponseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *cachedResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
