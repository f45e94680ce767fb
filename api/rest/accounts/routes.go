package accounts

import (
	"codeberg.org/svgforge/server/internal/auth"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"codeberg.org/svgforge/server/svgforge/credits"
	"github.com/gin-gonic/gin"
)

// registers account routes
func RegisterRoutes(router *gin.RouterGroup, accountRepo *accounts.Repository, engine *credits.Engine) {
	group := router.Group("/accounts", auth.AuthMiddleware())
	{
		group.GET("/me/credits", BalanceHandler(accountRepo, engine))
		group.DELETE("/me", DeleteHandler(accountRepo))
	}
}
