package accounts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new account repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// scans one account row; the row must carry the canonical column set in
// the order of accountColumns. Exported so the credit ledger store can
// reuse it for its locked read.
func ScanAccount(row pgx.Row) (*Account, error) {
	var account Account

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Provider,
		&account.ProviderID,
		&account.Name,
		&account.SubscriptionStatus,
		&account.SubscriptionTier,
		&account.MonthlyCredits,
		&account.MonthlyCreditsUsed,
		&account.LifetimeCreditsGranted,
		&account.LifetimeCreditsUsed,
		&account.BillingDay,
		&account.CreditsResetAt,
		&account.IsAdmin,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &account, nil
}

// finds an account by OAuth provider or provisions a new one with the
// given lifetime credit grant
func (r *Repository) FindOrCreateByProvider(
	ctx context.Context,
	provider, providerID, email, name string,
	lifetimeGrant int,
) (*Account, error) {
	row := r.db.QueryRow(
		ctx,
		queryFindOrCreateByProvider,
		provider,
		providerID,
		email,
		name,
		lifetimeGrant,
	)

	account, err := ScanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create account: %w", err)
	}

	return account, nil
}

// finds an account by its ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*Account, error) {
	account, err := ScanAccount(r.db.QueryRow(ctx, queryFindByID, userID))
	if err != nil {
		return nil, err
	}

	return account, nil
}

// lists accounts newest first, for the admin surface
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Account, error) {
	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var result []*Account

	for rows.Next() {
		account, err := ScanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}

		result = append(result, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	return result, nil
}

// deletes an account; anonymous counters are keyed by IP hash and are
// unaffected
func (r *Repository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, queryDelete, userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}
