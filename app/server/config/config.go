package config

import "time"

type Config struct {
	System struct {
		IsProd                bool          // 是否为生产环境
		Listen                string        // 监听地址
		DBConnectionString    string        // Postgres 数据库的连接字符串
		RedisConnectionString string        // Redis 数据库的连接字符串
		DBTimeout             time.Duration // 单次数据库操作的超时时间
	}
	Security struct {
		SignatureSecretKey string        // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效，但不影响使用
		AuthTokenDuration  time.Duration // 登录凭据的有效期
		SecureCookie       bool          // cookie 是否只在 HTTPS 下发送
		AuthRateLimit      float64       // 每个 IP 每秒允许的注册和登录次数， 0 表示不限制
	}
	Cache struct {
		TTL     time.Duration // 个性化内容缓存的有效期
		Timeout time.Duration // 单次缓存操作的超时时间，超时视为缓存不可用
	}
	Upload struct {
		MaxSize              int64 // 上传文件的大小上限（字节）
		DownloadRequireOwner bool  // 下载时是否校验文件所有者
	}
	Storage Storage
}

// Storage 文件存储配置，服务端和 auditor 共用
type Storage struct {
	Backend string // 文件存储后端： local 或 s3
	Dir     string // 本地存储目录

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string // 兼容 S3 的服务地址（例如 MinIO ），留空使用 AWS 默认
	S3AccessKey    string
	S3SecretKey    string
}
