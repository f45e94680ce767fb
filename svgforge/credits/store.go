package credits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/svgforge/server/internal/logger"
	"codeberg.org/svgforge/server/internal/policy"
	"codeberg.org/svgforge/server/svgforge/accounts"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the production ledger. Per-identity serialization comes
// from SELECT ... FOR UPDATE on the account row and from a guarded upsert
// on the anonymous counter, so the read-check-write sequence is indivisible
// no matter how many server instances run.
type PostgresStore struct {
	db *pgxpool.Pool
}

// creates a new postgres-backed credit ledger store
func NewStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// runs decide against the exclusively locked account row in one transaction.
// A caller timeout while waiting on the lock rolls the transaction back;
// nothing is ever partially committed.
func (s *PostgresStore) DeductAccount(ctx context.Context, userID string, decide DecideFunc) (Result, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	acct, err := accounts.ScanAccount(tx.QueryRow(ctx, queryLockAccount, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Result{}, ErrAccountNotFound
		}

		return Result{}, fmt.Errorf("failed to lock account row: %w", err)
	}

	decision, err := decide(acct)
	if err != nil {
		return Result{}, err
	}

	if decision.Mutated {
		_, err = tx.Exec(ctx, queryApplyUsage,
			acct.MonthlyCreditsUsed,
			acct.LifetimeCreditsUsed,
			acct.CreditsResetAt,
			userID,
		)
		if err != nil {
			return Result{}, fmt.Errorf("failed to apply usage update: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return decision.Result, nil
}

// bumps the per-identity daily counter if it is still under the cap. The
// single guarded upsert is the serialization point: concurrent calls for
// the same key queue on the row and at most cap of them ever succeed.
func (s *PostgresStore) IncrementDaily(ctx context.Context, identityHash string, day time.Time, genType policy.GenerationType, limit int) (int, bool, error) {
	var count int

	err := s.db.QueryRow(ctx, queryIncrementDaily,
		identityHash,
		day.Format("2006-01-02"),
		string(genType),
		limit,
	).Scan(&count)

	if errors.Is(err, pgx.ErrNoRows) {
		// cap reached: the guarded update matched no row
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert daily counter: %w", err)
	}

	return count, true, nil
}
