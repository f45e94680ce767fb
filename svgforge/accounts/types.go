package accounts

import (
	"time"

	"codeberg.org/svgforge/server/internal/policy"
	"github.com/jackc/pgx/v5/pgxpool"
)

// subscription status values written by the sync collaborator
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// handles account database operations
type Repository struct {
	db *pgxpool.Pool
}

// Account is one authenticated identity's quota state. Usage counters are
// owned by the credit engine; subscription fields are owned by the
// subscription sync collaborator.
type Account struct {
	ID                     string      `json:"id"`
	Email                  string      `json:"email"`
	Provider               string      `json:"provider"`
	ProviderID             string      `json:"-"`
	Name                   string      `json:"name"`
	SubscriptionStatus     string      `json:"subscription_status"`
	SubscriptionTier       policy.Tier `json:"subscription_tier"`
	MonthlyCredits         int         `json:"monthly_credits"`
	MonthlyCreditsUsed     int         `json:"monthly_credits_used"`
	LifetimeCreditsGranted int         `json:"lifetime_credits_granted"`
	LifetimeCreditsUsed    int         `json:"lifetime_credits_used"`
	BillingDay             int         `json:"billing_day"` // 0 until first activation
	CreditsResetAt         time.Time   `json:"credits_reset_at"`
	IsAdmin                bool        `json:"-"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// reports whether the account currently draws from its monthly allowance
func (a *Account) IsSubscribed() bool {
	return a.SubscriptionStatus == StatusActive && a.SubscriptionTier != policy.TierNone
}
