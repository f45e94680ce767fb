package admin

import (
	"codeberg.org/svgforge/server/internal/auth"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"codeberg.org/svgforge/server/svgforge/credits"
	"github.com/gin-gonic/gin"
)

// registers admin routes
func RegisterRoutes(router *gin.RouterGroup, accountRepo *accounts.Repository, engine *credits.Engine) {
	group := router.Group("/admin", auth.AuthMiddleware(), auth.RequireAdmin())
	{
		group.GET("/accounts", ListAccountsHandler(accountRepo, engine))
	}
}
