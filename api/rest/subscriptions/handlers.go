package subscriptions

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	apierrors "codeberg.org/svgforge/server/internal/errors"
	"codeberg.org/svgforge/server/internal/logger"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/subscriptions"
	"github.com/gin-gonic/gin"
)

// header carrying the shared secret of the billing collaborator
const syncSecretHeader = "X-Sync-Secret"

// guards the sync endpoint: only the billing collaborator may write
// subscription state
func SyncSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(syncSecretHeader)

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			apierrors.Forbidden(c, "invalid sync credentials")
			c.Abort()
			return
		}

		c.Next()
	}
}

// applies one subscription change from the billing provider
func SyncHandler(repo *subscriptions.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SyncRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		tier, err := policy.ParseTier(req.Tier)
		if err != nil {
			apierrors.BadRequest(c, "unknown subscription tier", nil)
			return
		}

		periodStart, err := time.Parse(time.RFC3339, req.PeriodStart)
		if err != nil {
			apierrors.BadRequest(c, "period_start must be RFC 3339", err)
			return
		}

		account, err := repo.Apply(c.Request.Context(), subscriptions.SyncEvent{
			UserID:         req.UserID,
			Status:         req.Status,
			Tier:           tier,
			MonthlyCredits: req.MonthlyCredits,
			PeriodStart:    periodStart,
			CycleRenewal:   req.CycleRenewal,
		})

		if err != nil {
			if errors.Is(err, subscriptions.ErrAccountNotFound) {
				apierrors.NotFound(c, "account")
				return
			}

			apierrors.InternalError(c, "failed to apply subscription sync", err)
			return
		}

		logger.Info("subscription sync applied",
			"user_id", account.ID,
			"status", account.SubscriptionStatus,
			"tier", account.SubscriptionTier,
			"cycle_renewal", req.CycleRenewal,
		)

		c.JSON(http.StatusOK, SyncResponse{Account: account})
	}
}
