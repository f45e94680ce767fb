package credits

import (
	"context"
	"errors"
	"time"

	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/accounts"
)

// returned when a check-and-deduct targets a user id with no account row
// (stale token after deletion)
var ErrAccountNotFound = errors.New("account not found")

// Bucket names the allowance a quota check drew from
type Bucket string

const (
	BucketMonthly  Bucket = "monthly"  // active subscriber allowance
	BucketLifetime Bucket = "lifetime" // signup bonus for unsubscribed accounts
	BucketDaily    Bucket = "daily"    // anonymous per-type daily cap
)

// Result is the outcome of one check-and-deduct. Exhaustion is a normal
// result, not an error: Success false with the balance that was available.
type Result struct {
	Success   bool
	Remaining int
	Bucket    Bucket
}

// Decision is what a DecideFunc resolved against the locked account row:
// the outcome to report and whether the account's engine-owned fields
// (usage counters, credits_reset_at) changed and must be persisted.
type Decision struct {
	Result  Result
	Mutated bool
}

// DecideFunc runs the balance evaluation against an account row while the
// store holds its exclusive lock. It may mutate the engine-owned fields of
// acct in place; the store persists them if Mutated is set.
type DecideFunc func(acct *accounts.Account) (Decision, error)

// Store is the durable credit ledger. Implementations must serialize
// DeductAccount calls per user id (row lock) and make IncrementDaily an
// atomic conditional increment, because concurrent requests from the same
// identity race across server instances.
type Store interface {
	DeductAccount(ctx context.Context, userID string, decide DecideFunc) (Result, error)
	IncrementDaily(ctx context.Context, identityHash string, day time.Time, genType policy.GenerationType, limit int) (count int, ok bool, err error)
}
