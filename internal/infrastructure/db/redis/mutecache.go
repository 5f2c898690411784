package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const muteCacheTTL = 30 * time.Second

// MuteCache caches the muted-username set per province as a JSON blob with a
// short TTL. Writers invalidate with a DEL; readers repopulate on miss. The
// mute store stays the source of truth.
// Key format: muted:<province>
type MuteCache struct {
	client *redis.Client
}

// NewMuteCache creates a MuteCache wrapping the given Redis client.
func NewMuteCache(client *redis.Client) *MuteCache {
	return &MuteCache{client: client}
}

// Members returns the cached set; ok is false on a cache miss.
func (m *MuteCache) Members(ctx context.Context, province string) ([]string, bool, error) {
	raw, err := m.client.Get(ctx, m.key(province)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mute cache get: %w", err)
	}

	var usernames []string
	if err := json.Unmarshal([]byte(raw), &usernames); err != nil {
		return nil, false, fmt.Errorf("mute cache decode: %w", err)
	}
	return usernames, true, nil
}

// Fill stores the set for the province (expires after muteCacheTTL).
func (m *MuteCache) Fill(ctx context.Context, province string, usernames []string) error {
	if usernames == nil {
		usernames = []string{}
	}
	raw, err := json.Marshal(usernames)
	if err != nil {
		return fmt.Errorf("mute cache encode: %w", err)
	}
	return m.client.Set(ctx, m.key(province), raw, muteCacheTTL).Err()
}

// Invalidate drops the cached set so the next read hits the store.
func (m *MuteCache) Invalidate(ctx context.Context, province string) error {
	return m.client.Del(ctx, m.key(province)).Err()
}

func (m *MuteCache) key(province string) string {
	return "muted:" + province
}
