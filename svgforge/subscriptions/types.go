package subscriptions

import (
	"time"

	"codeberg.org/svgforge/server/internal/policy"
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles subscription state writes coming from the billing provider
type Repository struct {
	db *pgxpool.Pool
}

// SyncEvent is one provider-side subscription change to apply to an
// account. CycleRenewal marks the start of a new billing period (first
// activation or renewal); only then is the monthly usage counter zeroed.
type SyncEvent struct {
	UserID         string
	Status         string
	Tier           policy.Tier
	MonthlyCredits int
	PeriodStart    time.Time
	CycleRenewal   bool
}
