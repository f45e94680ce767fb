package credits

import (
	"context"
	"sync"
	"testing"
	"time"

	"codeberg.org/svgforge/server/internal/identity"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Store honoring the same serialization contract
// as the postgres implementation: DeductAccount runs the decide func under a
// lock against an isolated copy of the row and persists it only when the
// decision says so, IncrementDaily is an atomic conditional increment.
type memoryStore struct {
	mu       sync.Mutex
	accounts map[string]*accounts.Account
	daily    map[string]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[string]*accounts.Account),
		daily:    make(map[string]int),
	}
}

func (m *memoryStore) DeductAccount(_ context.Context, userID string, decide DecideFunc) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[userID]
	if !ok {
		return Result{}, ErrAccountNotFound
	}

	// decide mutates a copy, mimicking an uncommitted transaction
	working := *acct

	decision, err := decide(&working)
	if err != nil {
		return Result{}, err
	}

	if decision.Mutated {
		*acct = working
	}

	return decision.Result, nil
}

func (m *memoryStore) IncrementDaily(_ context.Context, identityHash string, day time.Time, genType policy.GenerationType, limit int) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := identityHash + "/" + day.Format("2006-01-02") + "/" + string(genType)

	if m.daily[key] >= limit {
		return 0, false, nil
	}

	m.daily[key]++

	return m.daily[key], true, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2025, time.July, 20, 12, 0, 0, 0, time.UTC)

func subscriberAccount(id string, credits, used int) *accounts.Account {
	return &accounts.Account{
		ID:                 id,
		SubscriptionStatus: accounts.StatusActive,
		SubscriptionTier:   policy.TierStarter,
		MonthlyCredits:     credits,
		MonthlyCreditsUsed: used,
		BillingDay:         15,
		CreditsResetAt:     time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC),
	}
}

func freeAccount(id string, granted, used int) *accounts.Account {
	return &accounts.Account{
		ID:                     id,
		SubscriptionStatus:     accounts.StatusInactive,
		SubscriptionTier:       policy.TierNone,
		LifetimeCreditsGranted: granted,
		LifetimeCreditsUsed:    used,
	}
}

func authID(userID string) identity.Identity {
	return identity.Identity{Kind: identity.KindAuthenticated, UserID: userID}
}

func anonID(hash string) identity.Identity {
	return identity.Identity{Kind: identity.KindAnonymous, IPHash: hash}
}

func TestCheckAndDeduct_ConcurrentSpend(t *testing.T) {
	// balance 2, cost 2: ten racing requests must yield exactly one success
	store := newMemoryStore()
	store.accounts["user-1"] = subscriberAccount("user-1", 2, 0)

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	const attempts = 10

	results := make([]Result, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationSVG)
		}(i)
	}

	wg.Wait()

	successes := 0

	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])

		if results[i].Success {
			successes++
			assert.Equal(t, 0, results[i].Remaining)
		}
	}

	assert.Equal(t, 1, successes, "exactly one racing request may win the balance")
	assert.Equal(t, 2, store.accounts["user-1"].MonthlyCreditsUsed, "usage must reflect a single deduction")
}

func TestCheckAndDeduct_LifetimeGrant(t *testing.T) {
	store := newMemoryStore()
	store.accounts["user-1"] = freeAccount("user-1", 6, 0)

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	for want := 5; want >= 3; want-- {
		res, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationIcon)

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, BucketLifetime, res.Bucket)
		assert.Equal(t, want, res.Remaining)
	}

	assert.Equal(t, 3, store.accounts["user-1"].LifetimeCreditsUsed)
}

func TestCheckAndDeduct_LifetimeExhausted(t *testing.T) {
	store := newMemoryStore()
	store.accounts["user-1"] = freeAccount("user-1", 6, 5)

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	// one credit left, svg costs two
	res, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationSVG)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, BucketLifetime, res.Bucket)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, 5, store.accounts["user-1"].LifetimeCreditsUsed, "failed check must not charge")
}

func TestCheckAndDeduct_MonthlyExhaustion(t *testing.T) {
	store := newMemoryStore()
	store.accounts["user-1"] = subscriberAccount("user-1", 100, 98)

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	res, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationSVG)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, BucketMonthly, res.Bucket)
	assert.Equal(t, 0, res.Remaining)

	// allowance drained, the next request of any type fails
	res, err = engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationIcon)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, 100, store.accounts["user-1"].MonthlyCreditsUsed)
}

func TestCheckAndDeduct_LazyRollover(t *testing.T) {
	store := newMemoryStore()

	acct := subscriberAccount("user-1", 100, 100)
	acct.CreditsResetAt = time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC) // two cycles stale
	store.accounts["user-1"] = acct

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	res, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationIcon)

	require.NoError(t, err)
	assert.True(t, res.Success, "a passed cycle boundary replenishes the allowance before evaluation")
	assert.Equal(t, 99, res.Remaining)

	stored := store.accounts["user-1"]
	assert.Equal(t, 1, stored.MonthlyCreditsUsed)
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), stored.CreditsResetAt,
		"the boundary catches up over skipped cycles")
}

func TestCheckAndDeduct_RolloverPersistsOnFailure(t *testing.T) {
	store := newMemoryStore()

	acct := subscriberAccount("user-1", 1, 1)
	acct.CreditsResetAt = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	store.accounts["user-1"] = acct

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	// rollover grants 1 credit back, but svg costs 2: check still fails
	res, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationSVG)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Remaining)

	stored := store.accounts["user-1"]
	assert.Equal(t, 0, stored.MonthlyCreditsUsed, "the rollover itself is persisted even when the check fails")
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), stored.CreditsResetAt)
}

func TestCheckAndDeduct_RolloverIdempotent(t *testing.T) {
	store := newMemoryStore()

	acct := subscriberAccount("user-1", 100, 90)
	acct.CreditsResetAt = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	store.accounts["user-1"] = acct

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	_, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationIcon)
	require.NoError(t, err)

	_, err = engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationIcon)
	require.NoError(t, err)

	stored := store.accounts["user-1"]
	assert.Equal(t, 2, stored.MonthlyCreditsUsed, "only the first call in a cycle rolls over")
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), stored.CreditsResetAt)
}

func TestCheckAndDeduct_NoRolloverBeforeActivation(t *testing.T) {
	store := newMemoryStore()

	// subscribed but billing_day never set: nothing to roll over
	acct := subscriberAccount("user-1", 100, 100)
	acct.BillingDay = 0
	store.accounts["user-1"] = acct

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	res, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationIcon)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 100, store.accounts["user-1"].MonthlyCreditsUsed)
}

func TestCheckAndDeduct_AnonymousDailyCaps(t *testing.T) {
	store := newMemoryStore()

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	hash := identity.HashIP("203.0.113.9")

	// svg: cap 1
	res, err := engine.CheckAndDeduct(context.Background(), anonID(hash), policy.GenerationSVG)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, BucketDaily, res.Bucket)
	assert.Equal(t, 0, res.Remaining)

	res, err = engine.CheckAndDeduct(context.Background(), anonID(hash), policy.GenerationSVG)
	require.NoError(t, err)
	assert.False(t, res.Success)

	// icon: cap 2, counted independently of svg
	for want := 1; want >= 0; want-- {
		res, err = engine.CheckAndDeduct(context.Background(), anonID(hash), policy.GenerationIcon)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, want, res.Remaining)
	}

	res, err = engine.CheckAndDeduct(context.Background(), anonID(hash), policy.GenerationIcon)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestCheckAndDeduct_AnonymousVideoNeedsAccount(t *testing.T) {
	store := newMemoryStore()

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	res, err := engine.CheckAndDeduct(context.Background(), anonID(identity.HashIP("203.0.113.9")), policy.GenerationVideo)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, BucketDaily, res.Bucket)
	assert.Empty(t, store.daily, "a zero-cap type never reaches the counter")
}

func TestCheckAndDeduct_AnonymousConcurrentCap(t *testing.T) {
	store := newMemoryStore()

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	hash := identity.HashIP("203.0.113.9")

	const attempts = 10

	results := make([]Result, attempts)

	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.CheckAndDeduct(context.Background(), anonID(hash), policy.GenerationSVG)
		}(i)
	}

	wg.Wait()

	successes := 0

	for _, res := range results {
		if res.Success {
			successes++
		}
	}

	assert.Equal(t, 1, successes, "the daily cap of 1 admits exactly one racing request")
}

func TestCheckAndDeduct_UnknownType(t *testing.T) {
	store := newMemoryStore()
	store.accounts["user-1"] = subscriberAccount("user-1", 100, 0)

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	_, err := engine.CheckAndDeduct(context.Background(), authID("user-1"), policy.GenerationType("3d-model"))
	assert.ErrorIs(t, err, policy.ErrUnknownGenerationType)
	assert.Equal(t, 0, store.accounts["user-1"].MonthlyCreditsUsed, "a rejected type must not charge")

	_, err = engine.CheckAndDeduct(context.Background(), anonID("abc"), policy.GenerationType("3d-model"))
	assert.ErrorIs(t, err, policy.ErrUnknownGenerationType)
	assert.Empty(t, store.daily)
}

func TestCheckAndDeduct_AccountNotFound(t *testing.T) {
	store := newMemoryStore()

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	_, err := engine.CheckAndDeduct(context.Background(), authID("ghost"), policy.GenerationIcon)

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCheckAndDeduct_MissingIdentity(t *testing.T) {
	store := newMemoryStore()

	engine := NewEngine(store, policy.Default())
	engine.now = fixedClock(testNow)

	_, err := engine.CheckAndDeduct(context.Background(), identity.Identity{}, policy.GenerationSVG)

	assert.ErrorIs(t, err, identity.ErrMissingIdentity)
}

func TestBalanceView_Subscriber(t *testing.T) {
	engine := NewEngine(newMemoryStore(), policy.Default())
	engine.now = fixedClock(testNow)

	res := engine.BalanceView(subscriberAccount("user-1", 100, 30))

	assert.Equal(t, 70, res.Remaining)
	assert.Equal(t, BucketMonthly, res.Bucket)
}

func TestBalanceView_VirtualRollover(t *testing.T) {
	engine := NewEngine(newMemoryStore(), policy.Default())
	engine.now = fixedClock(testNow)

	acct := subscriberAccount("user-1", 100, 100)
	acct.CreditsResetAt = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	res := engine.BalanceView(acct)

	assert.Equal(t, 100, res.Remaining, "a due rollover shows the full allowance")
	assert.Equal(t, 100, acct.MonthlyCreditsUsed, "the view never mutates the account")
}

func TestBalanceView_FreeAccount(t *testing.T) {
	engine := NewEngine(newMemoryStore(), policy.Default())
	engine.now = fixedClock(testNow)

	res := engine.BalanceView(freeAccount("user-1", 6, 4))

	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, BucketLifetime, res.Bucket)
}
