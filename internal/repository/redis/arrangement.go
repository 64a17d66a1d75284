package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidriera/showcase/internal/domain"
	apperrors "github.com/vidriera/showcase/pkg/errors"
)

const keyPrefix = "arrangement:latest:"

// defaultKey is used when an arrangement was produced without a stored rule set.
const defaultKey = "adhoc"

// ArrangementCache implements repository.ArrangementCache using Redis. One
// arrangement is kept per rule set, overwritten on every publish.
type ArrangementCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewArrangementCache creates a new Redis-backed arrangement cache.
func NewArrangementCache(client *redis.Client, ttl time.Duration) *ArrangementCache {
	return &ArrangementCache{
		client: client,
		ttl:    ttl,
	}
}

// SaveLatest stores the arrangement as the latest for its rule set with the
// configured TTL.
func (c *ArrangementCache) SaveLatest(ctx context.Context, a *domain.Arrangement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal arrangement: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(a.RuleSetID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set arrangement: %w", err)
	}

	return nil
}

// GetLatest retrieves the latest arrangement for the given rule set.
func (c *ArrangementCache) GetLatest(ctx context.Context, rulesetID string) (*domain.Arrangement, error) {
	data, err := c.client.Get(ctx, cacheKey(rulesetID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("arrangement", rulesetID)
		}
		return nil, fmt.Errorf("redis get arrangement: %w", err)
	}

	var a domain.Arrangement
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal arrangement: %w", err)
	}

	return &a, nil
}

// Invalidate drops the cached arrangement for the given rule set.
func (c *ArrangementCache) Invalidate(ctx context.Context, rulesetID string) error {
	if err := c.client.Del(ctx, cacheKey(rulesetID)).Err(); err != nil {
		return fmt.Errorf("redis del arrangement: %w", err)
	}

	return nil
}

func cacheKey(rulesetID string) string {
	if rulesetID == "" {
		rulesetID = defaultKey
	}
	return keyPrefix + rulesetID
}
