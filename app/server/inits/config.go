package inits

import (
	"content-gate/app/server/config"
	"content-gate/app/server/constants"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	cfg := &config.Config{}

	// 手动配置映射，基于环境变量
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	var err error

	if cfg.System.DBTimeout, err = EnvDuration("DB_TIMEOUT", constants.DBDefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.Security.AuthTokenDuration, err = EnvDuration("AUTH_TOKEN_DURATION", constants.AuthTokenDuration); err != nil {
		return nil, err
	}
	if cfg.Security.SecureCookie, err = envBool("SECURE_COOKIE", cfg.System.IsProd); err != nil {
		return nil, err
	}
	if limit, exist := os.LookupEnv("AUTH_RATE_LIMIT"); !exist {
		cfg.Security.AuthRateLimit = constants.AuthRateLimitDefault
	} else if cfg.Security.AuthRateLimit, err = strconv.ParseFloat(limit, 64); err != nil || cfg.Security.AuthRateLimit < 0 {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %s", limit)
	}
	if cfg.Cache.TTL, err = EnvDuration("CACHE_TTL", constants.CacheExpireContent); err != nil {
		return nil, err
	}
	if cfg.Cache.Timeout, err = EnvDuration("CACHE_TIMEOUT", constants.CacheDefaultTimeout); err != nil {
		return nil, err
	}

	if maxSize, exist := os.LookupEnv("UPLOAD_MAX_SIZE"); !exist {
		cfg.Upload.MaxSize = constants.UploadMaxSizeDefault
	} else if cfg.Upload.MaxSize, err = strconv.ParseInt(maxSize, 10, 64); err != nil || cfg.Upload.MaxSize <= 0 {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %s", maxSize)
	}
	if cfg.Upload.DownloadRequireOwner, err = envBool("DOWNLOAD_REQUIRE_OWNER", true); err != nil {
		return nil, err
	}

	// 文件存储
	if cfg.Storage, err = StorageConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StorageConfig 读取文件存储相关的环境变量
func StorageConfig() (config.Storage, error) {
	var cfg config.Storage

	if backend, exist := os.LookupEnv("STORAGE_BACKEND"); !exist {
		cfg.Backend = "local"
	} else {
		cfg.Backend = strings.ToLower(backend)
	}

	switch cfg.Backend {
	case "local":
		if dir, exist := os.LookupEnv("UPLOAD_DIR"); !exist {
			cfg.Dir = constants.UploadDirDefault
		} else {
			cfg.Dir = dir
		}
	case "s3":
		if bucket, exist := os.LookupEnv("S3_BUCKET"); !exist {
			return cfg, fmt.Errorf("S3_BUCKET environment variable not set")
		} else {
			cfg.S3Bucket = bucket
		}
		cfg.S3Region = os.Getenv("S3_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		cfg.S3BaseEndpoint = os.Getenv("S3_BASE_ENDPOINT")
		cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
		cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	default:
		return cfg, fmt.Errorf("unknown STORAGE_BACKEND: %s", cfg.Backend)
	}

	return cfg, nil
}

// EnvDuration 读取时长，未设置时使用默认值
func EnvDuration(name string, def time.Duration) (time.Duration, error) {
	raw, exist := os.LookupEnv(name)
	if !exist {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}

	return d, nil
}

func envBool(name string, def bool) (bool, error) {
	raw, exist := os.LookupEnv(name)
	if !exist {
		return def, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", name, raw)
	}

	return b, nil
}
