package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small read-through helper over Redis used for the settings
// document and the dashboard stats. A nil *Cache is valid and disables
// caching, so the server runs fine without REDIS_ADDR.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis and pings it. Returns nil (cache disabled) when addr is
// empty or the ping fails; a dead cache must not keep the store down.
func Connect(addr, password string) *Cache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("[CACHE] [ERROR] redis unreachable, caching disabled:", err)
		return nil
	}

	log.Println("[CACHE] [INFO] redis connected:", addr)
	return &Cache{client: client}
}

// GetJSON loads key into dest. Returns false on miss, disabled cache or a
// decode problem.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("[CACHE] [ERROR] get failed:", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Println("[CACHE] [ERROR] decode failed for key", key, ":", err)
		return false
	}
	return true
}

// SetJSON stores value under key with a TTL. Failures are logged and ignored.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Println("[CACHE] [ERROR] encode failed for key", key, ":", err)
		return
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Println("[CACHE] [ERROR] set failed:", err)
	}
}

// Delete drops keys, used to invalidate after admin writes.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Println("[CACHE] [ERROR] delete failed:", err)
	}
}
