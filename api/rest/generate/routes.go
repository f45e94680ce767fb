package generate

import (
	creditsapi "codeberg.org/svgforge/server/api/rest/credits"
	"codeberg.org/svgforge/server/internal/auth"
	"codeberg.org/svgforge/server/internal/generator"
	"codeberg.org/svgforge/server/internal/identity"
	"github.com/gin-gonic/gin"
)

// registers generation routes
func RegisterRoutes(router *gin.RouterGroup, engine creditsapi.QuotaEngine, resolver *identity.Resolver, gen generator.Generator) {
	router.POST("/generate/:type", auth.OptionalAuthMiddleware(), Handler(engine, resolver, gen))
}
