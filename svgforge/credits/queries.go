package credits

const (
	// exclusive row lock; column order must match accounts.ScanAccount
	queryLockAccount = `
		SELECT id, email, provider, provider_id, name,
			subscription_status, subscription_tier,
			monthly_credits, monthly_credits_used,
			lifetime_credits_granted, lifetime_credits_used,
			billing_day, credits_reset_at, is_admin, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	// persists the engine-owned fields resolved under the lock above
	queryApplyUsage = `
		UPDATE accounts
		SET monthly_credits_used = $1,
			lifetime_credits_used = $2,
			credits_reset_at = $3,
			updated_at = NOW()
		WHERE id = $4
	`

	// atomic guarded upsert: the first generation of the day creates the
	// counter at 1, later ones only increment while still under the cap.
	// No row comes back when the cap is already reached.
	queryIncrementDaily = `
		INSERT INTO anonymous_quota (identity_hash, generation_date, generation_type, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (identity_hash, generation_date, generation_type)
		DO UPDATE SET
			count = anonymous_quota.count + 1,
			updated_at = NOW()
		WHERE anonymous_quota.count < $4
		RETURNING count
	`
)
