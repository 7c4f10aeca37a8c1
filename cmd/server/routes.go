package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mixit-kr/gateway/internal/config"
	"github.com/mixit-kr/gateway/internal/handlers"
	"github.com/mixit-kr/gateway/internal/middleware"
	"github.com/mixit-kr/gateway/internal/session"
)

func registerRoutes(r *gin.Engine, h *handlers.Handlers, sessions *session.Service, cfg *config.Config) {
	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RedisRateLimitMiddleware(10, time.Minute), h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", sessions.RequireSession(), h.Me)
			auth.GET("/kakao", h.KakaoLogin)
			auth.GET("/kakao/callback", h.KakaoCallback)
			auth.POST("/password/verify", sessions.RequireSession(), h.VerifyPassword)
		}

		accounts := api.Group("/accounts")
		{
			accounts.POST("/signup", middleware.RedisRateLimitMiddleware(5, time.Minute), h.Signup)
			accounts.POST("/duplicate", h.CheckDuplicate)
			accounts.POST("/email/verify-request", h.RequestEmailVerification)
			accounts.POST("/email/verify", h.ConfirmEmailVerification)
			accounts.PUT("/password", sessions.RequireSession(), h.ChangePassword)
			accounts.DELETE("", sessions.RequireSession(), h.DeleteAccount)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", sessions.OptionalSession(), h.ListPosts)
			posts.GET("/search", sessions.OptionalSession(), h.SearchPosts)
			posts.POST("", sessions.RequireSession(), h.CreatePost)
			posts.GET("/:id", sessions.OptionalSession(), h.GetPost)
			posts.PUT("/:id", sessions.RequireSession(), h.UpdatePost)
			posts.DELETE("/:id", sessions.RequireSession(), h.DeletePost)
			posts.POST("/:id/views", h.CountView)

			posts.GET("/:id/reviews", sessions.OptionalSession(), h.ListReviews)
			posts.POST("/:id/reviews", sessions.RequireSession(), h.CreateReview)
			posts.PATCH("/:id/reviews/:reviewId", sessions.RequireSession(), h.UpdateReview)
			posts.DELETE("/:id/reviews/:reviewId", sessions.RequireSession(), h.DeleteReview)

			posts.POST("/:id/like", sessions.RequireSession(), h.LikePost)
			posts.DELETE("/:id/like", sessions.RequireSession(), h.UnlikePost)
			posts.POST("/:id/bookmark", sessions.RequireSession(), h.BookmarkPost)
			posts.DELETE("/:id/bookmark", sessions.RequireSession(), h.UnbookmarkPost)
			posts.GET("/:id/rate", sessions.OptionalSession(), h.GetRating)
			posts.POST("/:id/rate", sessions.RequireSession(), h.RatePost)
		}

		home := api.Group("/home")
		{
			home.Use(sessions.OptionalSession())
			cached := middleware.ResponseCacheMiddleware(30*time.Second, cfg.CookieName)
			home.GET("/category/:category", cached, h.CategoryFeed)
			home.GET("/popular/combos", cached, h.PopularCombos)
			home.GET("/recommendations/today", cached, h.TodayRecommendations)
			home.GET("/tags", cached, h.Tags)
			home.GET("/tags/popular", cached, h.PopularTags)
		}

		api.POST("/images", sessions.RequireSession(), h.UploadImage)
	}

	notifications := r.Group("/api/notifications")
	{
		notifications.Use(sessions.OptionalSession())
		notifications.GET("", h.ListNotifications)
		notifications.PATCH("/read", h.MarkNotificationRead)
		notifications.GET("/subscribe", h.SubscribeNotifications)
	}
}
