package inits

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"time"
)

func Redis(conn string, l *zap.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opts)

	// 缓存不可用不影响服务，这里只记录，之后由缓存层降级处理
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = rdb.Ping(ctx).Err(); err != nil {
		l.Warn("redis is unreachable, serving without cache until it recovers", zap.String("addr", opts.Addr), zap.Error(err))
	}

	return rdb, nil
}
