package auth

import (
	"codeberg.org/svgforge/server/internal/auth"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, accountRepo *accounts.Repository, pol policy.Policy) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(accountRepo, pol))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", auth.AuthMiddleware(), GetCurrentAccountHandler(accountRepo))
	}
}
