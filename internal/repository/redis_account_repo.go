package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"oneflex/internal/model"

	"github.com/redis/go-redis/v9"
)

type redisAccountRepo struct {
	rc  *RedisClient
	now func() time.Time
}

func NewRedisAccountRepo(rc *RedisClient) AccountRepository {
	return &redisAccountRepo{rc: rc, now: time.Now}
}

func (r *redisAccountRepo) CreateAccount(ctx context.Context, a *model.Account) error {
	existing, err := r.GetAccount(ctx, a.AccountID)
	if err != nil {
		return err
	}
	now := r.now().UTC()
	if existing != nil {
		existing.Email = a.Email
		existing.Name = a.Name
		existing.UpdatedAt = now
		*a = *existing
	} else {
		a.CreatedAt = now
		a.UpdatedAt = now
	}
	if err := r.save(ctx, a); err != nil {
		return fmt.Errorf("create account %s: %w", a.AccountID, err)
	}
	return nil
}

func (r *redisAccountRepo) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	var a model.Account
	found, err := r.rc.getJSON(ctx, r.rc.key("account", accountID), &a)
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", accountID, err)
	}
	if !found {
		return nil, nil
	}
	return &a, nil
}

func (r *redisAccountRepo) UpdateSubscriptionSummary(ctx context.Context, accountID, status, planID string, expiresAt time.Time) (bool, error) {
	a, err := r.GetAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	if a == nil {
		return false, nil
	}
	a.SubscriptionStatus = status
	a.SubscriptionPlan = planID
	a.SubscriptionExpiresAt = &expiresAt
	a.UpdatedAt = r.now().UTC()
	if err := r.save(ctx, a); err != nil {
		return false, fmt.Errorf("update subscription summary for account %s: %w", accountID, err)
	}
	return true, nil
}

func (r *redisAccountRepo) CountAccounts(ctx context.Context) (int, error) {
	n, err := r.rc.client.SCard(ctx, r.rc.key("accounts")).Result()
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return int(n), nil
}

func (r *redisAccountRepo) save(ctx context.Context, a *model.Account) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = r.rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.rc.key("account", a.AccountID), data, 0)
		pipe.SAdd(ctx, r.rc.key("accounts"), a.AccountID)
		return nil
	})
	return err
}
