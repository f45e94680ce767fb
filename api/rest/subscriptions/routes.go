package subscriptions

import (
	"codeberg.org/svgforge/server/svgforge/subscriptions"
	"github.com/gin-gonic/gin"
)

// registers the subscription sync route
func RegisterRoutes(router *gin.RouterGroup, repo *subscriptions.Repository, syncSecret string) {
	router.POST("/subscriptions/sync", SyncSecretMiddleware(syncSecret), SyncHandler(repo))
}
