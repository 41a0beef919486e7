package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 表示 key 不存在或已过期
var ErrMiss = errors.New("cache miss")

// Store 是外部带 TTL 的键值缓存。除 ErrMiss 外的错误都表示缓存不可用。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	ScanPrefix(ctx context.Context, prefix string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
}
