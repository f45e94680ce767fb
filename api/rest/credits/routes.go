package credits

import (
	"codeberg.org/svgforge/server/internal/auth"
	"codeberg.org/svgforge/server/internal/identity"
	"github.com/gin-gonic/gin"
)

// registers the quota engine routes
func RegisterRoutes(router *gin.RouterGroup, engine QuotaEngine, resolver *identity.Resolver) {
	router.POST("/credits/check-and-deduct", auth.OptionalAuthMiddleware(), Handler(engine, resolver))
}
