package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mixit-kr/gateway/internal/cache"
	"github.com/mixit-kr/gateway/internal/logger"
)

// RedisRateLimitMiddleware creates a distributed rate limiter using Redis.
// Keys count requests per client IP per endpoint within a fixed window.
// When Redis was never configured the limiter is a pass-through; when Redis
// is configured but failing, requests are rejected rather than let an
// unprotected login endpoint absorb a credential-stuffing run.
func RedisRateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisClient := cache.GetRedisClient()
		if redisClient == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		endpoint := c.FullPath()
		key := fmt.Sprintf("rate_limit:%s:%s", endpoint, clientIP)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		val, err := redisClient.GetInt(ctx, key)
		if err != nil && err.Error() != "redis: nil" {
			logger.Log.Error("Rate limit check failed, rejecting request",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{"code": "SERVICE_UNAVAILABLE", "message": "잠시 후 다시 시도해 주세요"})
			c.Abort()
			return
		}

		if val >= int64(maxRequests) {
			logger.Log.Warn("Rate limit exceeded",
				logger.WithIP(clientIP),
				zap.String("endpoint", endpoint),
				zap.Int("max_requests", maxRequests),
			)
			RecordRateLimitExceeded(endpoint)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":        "RATE_LIMITED",
				"message":     "요청이 너무 많습니다",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		newVal, err := redisClient.IncrBy(ctx, key, 1)
		if err != nil {
			logger.Log.Error("Rate limit increment failed, rejecting request",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{"code": "SERVICE_UNAVAILABLE", "message": "잠시 후 다시 시도해 주세요"})
			c.Abort()
			return
		}

		// First request in this window starts the expiry clock
		if newVal == 1 {
			if err := redisClient.Expire(ctx, key, window); err != nil {
				logger.Log.Warn("Failed to set rate limit expiry", zap.Error(err))
			}
		}

		c.Next()
	}
}
