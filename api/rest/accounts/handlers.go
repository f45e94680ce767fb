package accounts

import (
	"net/http"
	"time"

	"codeberg.org/svgforge/server/internal/auth"
	"codeberg.org/svgforge/server/internal/billing"
	"codeberg.org/svgforge/server/internal/errors"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"codeberg.org/svgforge/server/svgforge/credits"
	"github.com/gin-gonic/gin"
)

// reports the authenticated account's credit balance. Read-only: a due
// rollover is reflected in the numbers but persisted only by the next
// check-and-deduct.
func BalanceHandler(accountRepo *accounts.Repository, engine *credits.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		account, err := accountRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			errors.NotFound(c, "account")
			return
		}

		view := engine.BalanceView(account)

		resp := BalanceResponse{
			Bucket:           string(view.Bucket),
			RemainingCredits: view.Remaining,
			Allowance:        account.LifetimeCreditsGranted,
		}

		if view.Bucket == credits.BucketMonthly {
			resp.Allowance = account.MonthlyCredits

			if account.BillingDay > 0 {
				next := billing.NextResetAt(account.BillingDay, time.Now().UTC())
				resp.NextResetAt = &next
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// deletes the authenticated account and its quota state
func DeleteHandler(accountRepo *accounts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		if err := accountRepo.Delete(c.Request.Context(), userID); err != nil {
			errors.InternalError(c, "failed to delete account", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
	}
}
