package constants

import "time"

// 个性化内容缓存，格式同时被失效清理使用，两边必须保持一致
const (
	CacheKeyContent       = "content:%d:%s:%s" // %d -> user id, %s -> theme, %s -> language
	CacheKeyContentPrefix = "content:%d:"      // %d -> user id
)

const (
	CacheExpireContent  = 5 * time.Minute
	CacheDefaultTimeout = 500 * time.Millisecond
	CacheScanBatch      = 100
)
