package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

const (
	lockTTL       = 5 * time.Second
	lockWait      = 2 * time.Second
	lockPollEvery = 20 * time.Millisecond
)

// releaseScript deletes the lock only when the stored token matches, so a
// holder whose TTL already expired cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// OfferLock serializes offer mutations across processes.
// Key format: lock:offer:<offer_id>
type OfferLock struct {
	client *redis.Client
}

// NewOfferLock creates an OfferLock wrapping the given Redis client.
func NewOfferLock(client *redis.Client) *OfferLock {
	return &OfferLock{client: client}
}

// LockOfferForUpdate acquires the per-offer lock, polling up to lockWait.
// When the lock cannot be acquired in time it returns domain.ErrConflict so
// the caller can surface a retriable conflict instead of blocking.
func (l *OfferLock) LockOfferForUpdate(ctx context.Context, offerID int64) (func(), error) {
	token, err := lockToken()
	if err != nil {
		return nil, err
	}

	key := l.key(offerID)
	deadline := time.Now().Add(lockWait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if ok {
			release := func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
				defer cancel()
				_, _ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Result()
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("lock held for offer %d: %w", offerID, domain.ErrConflict)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollEvery):
		}
	}
}

func (l *OfferLock) key(offerID int64) string {
	return fmt.Sprintf("lock:offer:%d", offerID)
}

func lockToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
