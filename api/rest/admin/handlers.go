package admin

import (
	"net/http"
	"strconv"
	"time"

	"codeberg.org/svgforge/server/internal/billing"
	"codeberg.org/svgforge/server/internal/errors"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"codeberg.org/svgforge/server/svgforge/credits"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// lists accounts with their live credit position for the admin console
func ListAccountsHandler(accountRepo *accounts.Repository, engine *credits.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntQuery(c, "limit", defaultListLimit)
		offset := parseIntQuery(c, "offset", 0)

		if limit < 1 || limit > maxListLimit {
			limit = defaultListLimit
		}

		if offset < 0 {
			offset = 0
		}

		list, err := accountRepo.List(c.Request.Context(), limit, offset)
		if err != nil {
			errors.InternalError(c, "failed to list accounts", err)
			return
		}

		rows := make([]AccountRow, 0, len(list))

		for _, account := range list {
			view := engine.BalanceView(account)

			row := AccountRow{
				ID:               account.ID,
				Email:            account.Email,
				Tier:             string(account.SubscriptionTier),
				Status:           account.SubscriptionStatus,
				Bucket:           string(view.Bucket),
				RemainingCredits: view.Remaining,
				Allowance:        account.LifetimeCreditsGranted,
			}

			if view.Bucket == credits.BucketMonthly {
				row.Allowance = account.MonthlyCredits

				if account.BillingDay > 0 {
					next := billing.NextResetAt(account.BillingDay, time.Now().UTC())
					row.NextResetAt = &next
				}
			}

			rows = append(rows, row)
		}

		c.JSON(http.StatusOK, ListResponse{
			Accounts: rows,
			Limit:    limit,
			Offset:   offset,
		})
	}
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
