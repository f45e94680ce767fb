package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/svgforge/server/svgforge/accounts"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// returned when a sync event targets a user id with no account row
var ErrAccountNotFound = errors.New("account not found")

// creates a new subscription repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// applies one provider-side subscription change and returns the updated
// account. Tier and status are last-writer-wins; usage counters are only
// touched on a cycle renewal.
func (r *Repository) Apply(ctx context.Context, ev SyncEvent) (*accounts.Account, error) {
	row := r.db.QueryRow(ctx, queryApplySync,
		ev.UserID,
		ev.Status,
		ev.Tier,
		ev.MonthlyCredits,
		ev.PeriodStart.UTC().Day(),
		ev.CycleRenewal,
		ev.PeriodStart.UTC(),
	)

	account, err := accounts.ScanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}

		return nil, fmt.Errorf("failed to apply subscription sync: %w", err)
	}

	return account, nil
}
