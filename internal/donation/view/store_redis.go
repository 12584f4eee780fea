package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "inkind/pkg/domain"
)

const viewKeyPrefix = "donation:view:"

// RedisStore shares the view between instances. Entries carry a TTL so an
// instance that crashed mid-reconcile cannot pin a stale record forever; the
// next Get after expiry misses and forces a ledger read.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithTTL overrides the default 24h entry lifetime.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, ttl: 24 * time.Hour}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, donationID id.DonationID) (Entry, bool, error) {
	raw, err := s.client.Get(ctx, viewKeyPrefix+donationID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get view entry: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("decode view entry: %w", err)
	}
	return entry, true, nil
}

func (s *RedisStore) Put(ctx context.Context, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode view entry: %w", err)
	}
	key := viewKeyPrefix + entry.Donation.ID.String()
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put view entry: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, donationID id.DonationID) error {
	if err := s.client.Del(ctx, viewKeyPrefix+donationID.String()).Err(); err != nil {
		return fmt.Errorf("delete view entry: %w", err)
	}
	return nil
}
