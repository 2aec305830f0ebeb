package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"oneflex/internal/model"

	"github.com/redis/go-redis/v9"
)

// redisEntitlementRepo keeps each record as a JSON document under
// <prefix>:entitlement:<account> and indexes accounts by start time in
// the <prefix>:entitlements sorted set.
type redisEntitlementRepo struct {
	rc *RedisClient
}

// NewRedisEntitlementRepo creates a Redis-backed EntitlementRepository.
func NewRedisEntitlementRepo(rc *RedisClient) EntitlementRepository {
	return &redisEntitlementRepo{rc: rc}
}

func (r *redisEntitlementRepo) Get(ctx context.Context, accountID string) (*model.Entitlement, error) {
	var e model.Entitlement
	found, err := r.rc.getJSON(ctx, r.rc.key("entitlement", accountID), &e)
	if err != nil {
		return nil, fmt.Errorf("fetch entitlement for account %s: %w", accountID, err)
	}
	if !found {
		return nil, nil
	}
	return &e, nil
}

func (r *redisEntitlementRepo) Put(ctx context.Context, e *model.Entitlement, mergeFields ...string) error {
	fields, err := resolveMergeFields(mergeFields)
	if err != nil {
		return err
	}

	doc := *e
	if len(fields) < len(EntitlementFields) {
		existing, err := r.Get(ctx, e.AccountID)
		if err != nil {
			return err
		}
		if existing != nil {
			mergeEntitlement(existing, e, fields)
			doc = *existing
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode entitlement for account %s: %w", e.AccountID, err)
	}
	_, err = r.rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.rc.key("entitlement", doc.AccountID), data, 0)
		pipe.ZAdd(ctx, r.rc.key("entitlements"), redis.Z{
			Score:  float64(doc.StartsAt.Unix()),
			Member: doc.AccountID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert entitlement for account %s: %w", e.AccountID, err)
	}
	return nil
}

func (r *redisEntitlementRepo) List(ctx context.Context) ([]model.Entitlement, error) {
	ids, err := r.rc.client.ZRevRange(ctx, r.rc.key("entitlements"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.rc.key("entitlement", id)
	}
	values, err := r.rc.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}

	out := make([]model.Entitlement, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var e model.Entitlement
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("decode entitlement %s: %w", ids[i], err)
		}
		out = append(out, e)
	}
	return out, nil
}
