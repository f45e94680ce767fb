package main

import (
	"os"
	"time"

	"codeberg.org/svgforge/server/api/rest/accounts"
	"codeberg.org/svgforge/server/api/rest/admin"
	"codeberg.org/svgforge/server/api/rest/auth"
	"codeberg.org/svgforge/server/api/rest/credits"
	"codeberg.org/svgforge/server/api/rest/generate"
	"codeberg.org/svgforge/server/api/rest/health"
	"codeberg.org/svgforge/server/api/rest/subscriptions"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/internal/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(corsMiddleware())
	router.GET("/health", health.Handler)

	limiterMiddleware, err := ratelimit.Middleware(server.config.RateLimit)
	if err != nil {
		return err
	}

	v1 := router.Group("/api/v1", limiterMiddleware)

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.accountRepo, policy.Default())
		credits.RegisterRoutes(v1, server.engine, server.resolver)
		generate.RegisterRoutes(v1, server.engine, server.resolver, server.generator)
		accounts.RegisterRoutes(v1, server.accountRepo, server.engine)
		subscriptions.RegisterRoutes(v1, server.subscriptionRepo, server.config.SubscriptionSyncSecret)
		admin.RegisterRoutes(v1, server.accountRepo, server.engine)
	}

	return nil
}

// allows the web frontend to call the API from its own origin
func corsMiddleware() gin.HandlerFunc {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
