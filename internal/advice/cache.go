package advice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/thenoetrevino/taskdeck/internal/models"
)

// DefaultCacheTTL is used when no TTL is configured
const DefaultCacheTTL = 10 * time.Minute

// RedisCache keeps advice in Redis. Read errors fall through to the service.
type RedisCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache wraps client. A non-positive ttl uses DefaultCacheTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{redis: client, ttl: ttl, logger: logger}
}

// CacheKey derives the Redis key for req from its full contents
func CacheKey(req models.TaskAdviceRequest) string {
	data, err := sonic.ConfigStd.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return "advice:" + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, req models.TaskAdviceRequest) (models.TaskAdviceResponse, bool) {
	key := CacheKey(req)
	if c.redis == nil || key == "" {
		return models.TaskAdviceResponse{}, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("advice cache read failed", "error", err)
		}
		return models.TaskAdviceResponse{}, false
	}
	var resp models.TaskAdviceResponse
	if err := sonic.ConfigStd.Unmarshal(data, &resp); err != nil || !resp.Success {
		_ = c.redis.Del(ctx, key).Err()
		return models.TaskAdviceResponse{}, false
	}
	return resp, true
}

// Put stores resp. Unsuccessful responses are ignored.
func (c *RedisCache) Put(ctx context.Context, req models.TaskAdviceRequest, resp models.TaskAdviceResponse) {
	key := CacheKey(req)
	if c.redis == nil || key == "" || !resp.Success {
		return
	}
	data, err := sonic.ConfigStd.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("advice cache write failed", "error", err)
	}
}
