package subscriptions

// Single-statement apply so it takes the same row lock check-and-deduct
// uses; a sync racing a quota check serializes on the account row.
// billing_day is written exactly once, on first activation, from the
// provider's billing period start; it is never recomputed afterwards.
const queryApplySync = `
	UPDATE accounts
	SET subscription_status = $2,
		subscription_tier = $3,
		monthly_credits = $4,
		billing_day = CASE WHEN billing_day = 0 THEN $5 ELSE billing_day END,
		monthly_credits_used = CASE WHEN $6 THEN 0 ELSE monthly_credits_used END,
		credits_reset_at = CASE WHEN $6 THEN $7 ELSE credits_reset_at END,
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, email, provider, provider_id, name,
		subscription_status, subscription_tier,
		monthly_credits, monthly_credits_used,
		lifetime_credits_granted, lifetime_credits_used,
		billing_day, credits_reset_at, is_admin, created_at, updated_at
`
