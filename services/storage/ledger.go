package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// UploadLedger records remote files that exist on the media host but are not yet referenced
// by a stored document. Entries are tracked before the upload starts and confirmed once the
// owning document is inserted (or the file is deleted again).
type UploadLedger interface {
	Track(ctx context.Context, publicID string) error
	Confirm(ctx context.Context, publicID string) error
	// Stale returns entries tracked more than olderThan ago.
	Stale(ctx context.Context, olderThan time.Duration) ([]string, error)
}

// DefaultLedgerKey is the sorted set holding pending uploads.
const DefaultLedgerKey = "sitecms:uploads:pending"

// RedisLedger keeps pending uploads in a Redis sorted set scored by tracking time.
type RedisLedger struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

func NewRedisLedger(client *redis.Client, key string) *RedisLedger {
	if key == "" {
		key = DefaultLedgerKey
	}
	return &RedisLedger{client: client, key: key, now: time.Now}
}

func (l *RedisLedger) Track(ctx context.Context, publicID string) error {
	z := &redis.Z{Score: float64(l.now().Unix()), Member: publicID}
	if err := l.client.ZAdd(ctx, l.key, z).Err(); err != nil {
		return fmt.Errorf("ledger: failed to track %s: %w", publicID, err)
	}
	return nil
}

func (l *RedisLedger) Confirm(ctx context.Context, publicID string) error {
	if err := l.client.ZRem(ctx, l.key, publicID).Err(); err != nil {
		return fmt.Errorf("ledger: failed to confirm %s: %w", publicID, err)
	}
	return nil
}

func (l *RedisLedger) Stale(ctx context.Context, olderThan time.Duration) ([]string, error) {
	cutoff := l.now().Add(-olderThan).Unix()
	ids, err := l.client.ZRangeByScore(ctx, l.key, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff, 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to list stale uploads: %w", err)
	}
	return ids, nil
}

// NoopLedger is used when Redis is not available; uploads are then only covered by the
// inline compensation of failed inserts.
type NoopLedger struct{}

func (NoopLedger) Track(context.Context, string) error                     { return nil }
func (NoopLedger) Confirm(context.Context, string) error                   { return nil }
func (NoopLedger) Stale(context.Context, time.Duration) ([]string, error) { return nil, nil }
