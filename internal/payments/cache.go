package payments

import (
	"context"
	"errors"
	"time"

	"estatehub_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "payments:status:"
	cacheTTL       = 24 * time.Hour
)

// CachedGateway memoises terminal gateway answers in Redis. A settled
// transaction never changes status, so success and failed are safe to cache;
// pending answers always go back to the gateway.
type CachedGateway struct {
	next Gateway
	rdb  *redis.Client
	log  *logger.Logger
}

var _ Gateway = (*CachedGateway)(nil)

func NewCachedGateway(next Gateway, rdb *redis.Client, log *logger.Logger) *CachedGateway {
	return &CachedGateway{next: next, rdb: rdb, log: log}
}

func (c *CachedGateway) GetStatus(ctx context.Context, reference string) (Status, error) {
	key := cacheKeyPrefix + reference

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		return Status(cached), nil
	}
	if !errors.Is(err, redis.Nil) {
		// Cache trouble must not block payment checks.
		c.log.Error("payment status cache read failed", "error", err, "reference", reference)
	}

	status, err := c.next.GetStatus(ctx, reference)
	if err != nil {
		return "", err
	}

	if status.IsTerminal() {
		if err := c.rdb.Set(ctx, key, string(status), cacheTTL).Err(); err != nil {
			c.log.Error("payment status cache write failed", "error", err, "reference", reference)
		}
	}
	return status, nil
}
