package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

// UserCache is a Redis-backed read cache of user records keyed by id.
// It only serves the lookup path; the database stays authoritative.
// PasswordHash is excluded from JSON serialization, so the hash never
// enters Redis and cached entries cannot satisfy a login.
type UserCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewUserCache(client *goredis.Client, ttl time.Duration) *UserCache {
	return &UserCache{
		client: client,
		prefix: "user:",
		ttl:    ttl,
	}
}

func (c *UserCache) key(id int64) string {
	return fmt.Sprintf("%s%d", c.prefix, id)
}

func (c *UserCache) Get(ctx context.Context, id int64) (*users.User, error) {
	val, err := c.client.Get(ctx, c.key(id)).Result()
	if err == goredis.Nil {
		return nil, nil // miss
	}
	if err != nil {
		return nil, err
	}

	var u users.User
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return nil, fmt.Errorf("cache: failed to unmarshal user: %w", err)
	}

	return &u, nil
}

func (c *UserCache) Set(ctx context.Context, u *users.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal user: %w", err)
	}

	return c.client.Set(ctx, c.key(u.ID), data, c.ttl).Err()
}

func (c *UserCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
