package cache

import (
	"content-gate/app/server/constants"
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"strings"
	"time"
)

var _ Store = (*RedisStore)(nil)

// RedisStore 每次调用都带独立的超时，避免缓存卡住请求
type RedisStore struct {
	rdb     redis.UniversalClient
	timeout time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, timeout time.Duration) *RedisStore {
	if timeout <= 0 {
		timeout = constants.CacheDefaultTimeout
	}

	return &RedisStore{
		rdb:     rdb,
		timeout: timeout,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	value, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// SET key value EX ttl ，值与过期时间一次写入
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// ScanPrefix 使用 SCAN 遍历匹配前缀的 key ，不使用会阻塞服务器的 KEYS
func (s *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		keys   []string
		cursor uint64
	)
	pattern := escapePattern(prefix) + "*"

	for {
		batch, next, err := s.rdb.Scan(ctx, cursor, pattern, constants.CacheScanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan %s: %w", pattern, err)
		}

		keys = append(keys, batch...)

		if next == 0 {
			break
		}
		cursor = next
	}

	return keys, nil
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

// escapePattern 转义 glob 特殊字符，前缀按字面匹配
func escapePattern(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
