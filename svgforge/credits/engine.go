// Package credits implements the generation-quota engine: the atomic
// check-and-deduct every generation request passes through. Given an
// identity and a generation type it verifies sufficient allowance and
// charges it in one durable step, or fails without charging anything.
package credits

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/svgforge/server/internal/billing"
	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/accounts"
)

// Engine evaluates quota against the injected policy and charges through
// the store. It keeps no balance state of its own: correctness under
// concurrency comes from the store's locking, not from this process.
type Engine struct {
	store  Store
	policy policy.Policy
	now    func() time.Time
}

// creates a new credit engine
func NewEngine(store Store, p policy.Policy) *Engine {
	return &Engine{
		store:  store,
		policy: p,
		now:    time.Now,
	}
}

// checks that the identity may consume one generation of the given type and
// atomically charges it. Exactly one durable usage mutation happens per
// successful call and none per failed call. A failed result is normal
// control flow (quota exhausted), not an error.
func (e *Engine) CheckAndDeduct(ctx context.Context, id identity.Identity, genType policy.GenerationType) (Result, error) {
	switch id.Kind {
	case identity.KindAuthenticated:
		return e.deductAccount(ctx, id.UserID, genType)
	case identity.KindAnonymous:
		return e.deductDaily(ctx, id.IPHash, genType)
	}

	return Result{}, identity.ErrMissingIdentity
}

// charges an authenticated account inside the store's row lock. Active
// subscribers draw from the monthly allowance (rolling it over lazily when
// a billing cycle boundary has passed), everyone else from the lifetime
// signup grant.
func (e *Engine) deductAccount(ctx context.Context, userID string, genType policy.GenerationType) (Result, error) {
	cost, err := e.policy.Cost(genType)
	if err != nil {
		return Result{}, err
	}

	now := e.now()

	return e.store.DeductAccount(ctx, userID, func(acct *accounts.Account) (Decision, error) {
		mutated := false

		// lazy billing-cycle rollover, before the balance is evaluated.
		// billing_day is zero until the first activation, in which case
		// there is no cycle to roll over yet.
		if acct.IsSubscribed() && acct.BillingDay > 0 && !acct.CreditsResetAt.IsZero() {
			if resetAt, rolled := billing.MaybeReset(acct.BillingDay, acct.CreditsResetAt, now); rolled {
				acct.MonthlyCreditsUsed = 0
				acct.CreditsResetAt = resetAt
				mutated = true
			}
		}

		var available int
		var bucket Bucket

		if acct.IsSubscribed() {
			available = acct.MonthlyCredits - acct.MonthlyCreditsUsed
			bucket = BucketMonthly
		} else {
			available = acct.LifetimeCreditsGranted - acct.LifetimeCreditsUsed
			bucket = BucketLifetime
		}

		if available < cost {
			// no deduction; a rollover detected above is still persisted,
			// it is idempotent and owned by the engine
			return Decision{
				Result:  Result{Success: false, Remaining: available, Bucket: bucket},
				Mutated: mutated,
			}, nil
		}

		if bucket == BucketMonthly {
			acct.MonthlyCreditsUsed += cost
		} else {
			acct.LifetimeCreditsUsed += cost
		}

		return Decision{
			Result:  Result{Success: true, Remaining: available - cost, Bucket: bucket},
			Mutated: true,
		}, nil
	})
}

// charges an anonymous identity against its per-type daily counter
func (e *Engine) deductDaily(ctx context.Context, ipHash string, genType policy.GenerationType) (Result, error) {
	dailyCap, err := e.policy.DailyCap(genType)
	if err != nil {
		return Result{}, err
	}

	// a zero cap means the type needs an account; never reaches the store,
	// whose guarded upsert assumes a cap of at least 1
	if dailyCap < 1 {
		return Result{Success: false, Remaining: 0, Bucket: BucketDaily}, nil
	}

	count, ok, err := e.store.IncrementDaily(ctx, ipHash, e.now().UTC(), genType, dailyCap)
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment daily counter: %w", err)
	}

	if !ok {
		return Result{Success: false, Remaining: 0, Bucket: BucketDaily}, nil
	}

	return Result{Success: true, Remaining: dailyCap - count, Bucket: BucketDaily}, nil
}

// reports the balance an account would have after any due rollover,
// without charging or persisting anything; used by the balance endpoint
func (e *Engine) BalanceView(acct *accounts.Account) Result {
	if !acct.IsSubscribed() {
		return Result{
			Remaining: acct.LifetimeCreditsGranted - acct.LifetimeCreditsUsed,
			Bucket:    BucketLifetime,
		}
	}

	used := acct.MonthlyCreditsUsed

	if acct.BillingDay > 0 && !acct.CreditsResetAt.IsZero() {
		if _, rolled := billing.MaybeReset(acct.BillingDay, acct.CreditsResetAt, e.now()); rolled {
			used = 0
		}
	}

	return Result{
		Remaining: acct.MonthlyCredits - used,
		Bucket:    BucketMonthly,
	}
}
