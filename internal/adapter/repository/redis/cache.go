package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/acmebank/account-manager/internal/usecase"
)

// BalanceCache implements usecase.BalanceCache using Redis. It only
// serves the balance read path; transfer validation always reads the
// store directly.
type BalanceCache struct {
	client *redis.Client
	prefix string
}

// NewBalanceCache creates a new BalanceCache.
func NewBalanceCache(client *redis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "balance:",
	}
}

// GetBalance retrieves a cached balance. A miss is (zero, false, nil).
func (c *BalanceCache) GetBalance(ctx context.Context, accountID int64) (decimal.Decimal, bool, error) {
	value, err := c.client.Get(ctx, c.key(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}

		return decimal.Zero, false, err
	}

	balance, err := decimal.NewFromString(value)
	if err != nil {
		// A corrupt entry is treated as a miss.
		return decimal.Zero, false, nil
	}

	return balance, true, nil
}

// SetBalance stores a balance snapshot with a TTL.
func (c *BalanceCache) SetBalance(ctx context.Context, accountID int64, balance decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(accountID), balance.String(), ttl).Err()
}

// Invalidate drops cached balances for the given accounts.
func (c *BalanceCache) Invalidate(ctx context.Context, accountIDs ...int64) error {
	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = c.key(id)
	}

	return c.client.Del(ctx, keys...).Err()
}

func (c *BalanceCache) key(accountID int64) string {
	return fmt.Sprintf("%s%d", c.prefix, accountID)
}

var _ usecase.BalanceCache = (*BalanceCache)(nil)
