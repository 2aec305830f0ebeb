package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oneflex/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, a *model.Account) error
	// GetAccount returns nil, nil when the account does not exist.
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
	// UpdateSubscriptionSummary touches existing accounts only and reports whether one was updated.
	UpdateSubscriptionSummary(ctx context.Context, accountID, status, planID string, expiresAt time.Time) (bool, error)
	CountAccounts(ctx context.Context) (int, error)
}

type accountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) AccountRepository {
	return &accountRepo{pool: pool}
}

func (r *accountRepo) CreateAccount(ctx context.Context, a *model.Account) error {
	const q = `
        INSERT INTO accounts (account_id, email, name)
        VALUES ($1, $2, $3)
        ON CONFLICT (account_id) DO UPDATE
        SET email = EXCLUDED.email,
            name = EXCLUDED.name,
            updated_at = NOW()
        RETURNING subscription_status, subscription_plan, subscription_expires_at, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, a.AccountID, a.Email, a.Name).Scan(
		&a.SubscriptionStatus,
		&a.SubscriptionPlan,
		&a.SubscriptionExpiresAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create account %s: %w", a.AccountID, err)
	}
	return nil
}

func (r *accountRepo) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	const q = `
        SELECT account_id, email, name, subscription_status, subscription_plan,
               subscription_expires_at, created_at, updated_at
        FROM accounts
        WHERE account_id = $1
    `
	var a model.Account
	err := r.pool.QueryRow(ctx, q, accountID).Scan(
		&a.AccountID,
		&a.Email,
		&a.Name,
		&a.SubscriptionStatus,
		&a.SubscriptionPlan,
		&a.SubscriptionExpiresAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", accountID, err)
	}
	return &a, nil
}

func (r *accountRepo) UpdateSubscriptionSummary(ctx context.Context, accountID, status, planID string, expiresAt time.Time) (bool, error) {
	const q = `
        UPDATE accounts
        SET subscription_status = $2,
            subscription_plan = $3,
            subscription_expires_at = $4,
            updated_at = NOW()
        WHERE account_id = $1
    `
	tag, err := r.pool.Exec(ctx, q, accountID, status, planID, expiresAt)
	if err != nil {
		return false, fmt.Errorf("update subscription summary for account %s: %w", accountID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *accountRepo) CountAccounts(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
