package accounts

// every query returns the full column set in the order ScanAccount expects
const accountColumns = `id, email, provider, provider_id, name,
		subscription_status, subscription_tier,
		monthly_credits, monthly_credits_used,
		lifetime_credits_granted, lifetime_credits_used,
		billing_day, credits_reset_at, is_admin, created_at, updated_at`

const (
	queryFindOrCreateByProvider = `
		INSERT INTO accounts (provider, provider_id, email, name, lifetime_credits_granted)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider, provider_id)
		DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			updated_at = NOW()
		RETURNING ` + accountColumns

	queryFindByID = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	queryList = `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	queryDelete = `
		DELETE FROM accounts
		WHERE id = $1
	`
)
