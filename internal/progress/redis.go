package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultProgressTTL is how long an idle reader's cached positions survive.
const DefaultProgressTTL = 90 * 24 * time.Hour

// RedisCache keeps each reader's ring in a hash keyed by story plus a sorted
// set ordered by last-read time, trimmed to capacity on every write.
type RedisCache struct {
	client   *redis.Client
	capacity int
	ttl      time.Duration
}

func NewRedisCache(addr, password string, capacity int, ttl time.Duration) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = DefaultProgressTTL
	}
	return &RedisCache{client: rdb, capacity: capacity, ttl: ttl}, nil
}

func (c *RedisCache) hashKey(readerKey string) string {
	return fmt.Sprintf("progress:reader:%s", readerKey)
}

func (c *RedisCache) recencyKey(readerKey string) string {
	return fmt.Sprintf("progress:reader:%s:recency", readerKey)
}

func (c *RedisCache) Get(ctx context.Context, readerKey string, storyID int64) (*Entry, error) {
	raw, err := c.client.HGet(ctx, c.hashKey(readerKey), fmt.Sprintf("%d", storyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("corrupt progress entry for reader %s: %w", readerKey, err)
	}
	return &entry, nil
}

func (c *RedisCache) Put(ctx context.Context, readerKey string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	hash := c.hashKey(readerKey)
	recency := c.recencyKey(readerKey)
	field := fmt.Sprintf("%d", entry.StoryID)

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, hash, field, raw)
	pipe.ZAdd(ctx, recency, redis.Z{Score: float64(entry.LastReadAt.UnixNano()), Member: field})
	pipe.Expire(ctx, hash, c.ttl)
	pipe.Expire(ctx, recency, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// Evict everything older than the newest `capacity` stories.
	stale, err := c.client.ZRevRange(ctx, recency, int64(c.capacity), -1).Result()
	if err != nil || len(stale) == 0 {
		return err
	}
	pipe = c.client.TxPipeline()
	pipe.HDel(ctx, hash, stale...)
	pipe.ZRem(ctx, recency, stale)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) Entries(ctx context.Context, readerKey string) ([]Entry, error) {
	fields, err := c.client.ZRevRange(ctx, c.recencyKey(readerKey), 0, int64(c.capacity-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	raws, err := c.client.HMGet(ctx, c.hashKey(readerKey), fields...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(s), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *RedisCache) Clear(ctx context.Context, readerKey string) error {
	return c.client.Del(ctx, c.hashKey(readerKey), c.recencyKey(readerKey)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
