package main

import (
	"content-gate/app/server/apidocs"
	"content-gate/app/server/cache"
	"content-gate/app/server/handlers"
	"content-gate/app/server/identity"
	"content-gate/app/server/inits"
	"content-gate/app/server/jwt"
	"content-gate/app/server/services/account"
	"content-gate/app/server/services/content"
	"content-gate/app/server/services/files"
	"content-gate/app/server/services/preference"
	"content-gate/app/server/store"
	"context"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"log"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd, "server")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString, l)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化文件存储
	blobs, err := inits.Storage(context.Background(), cfg.Storage)
	if err != nil {
		l.Fatal("error initializing file storage", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 准备服务
	users := store.NewGormUserStore(db, cfg.System.DBTimeout)
	contents := content.NewService(l.Named("content"), cache.NewRedisStore(rdb, cfg.Cache.Timeout), cfg.Cache.TTL)
	handlerApp := handlers.NewApp(l,
		account.NewService(l.Named("account"), users, j, cfg.Security.AuthTokenDuration),
		contents,
		preference.NewService(l.Named("preference"), users, contents),
		files.NewManager(l.Named("files"), store.NewGormFileStore(db, cfg.System.DBTimeout), blobs, files.Options{
			MaxSize:              cfg.Upload.MaxSize,
			DownloadRequireOwner: cfg.Upload.DownloadRequireOwner,
		}),
		cfg.Security.SecureCookie,
	)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = cfg.System.IsProd
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 绑定 echo 服务
	handlers.RegisterHandlers(e, handlerApp, identity.NewResolver(j), handlers.RouteOptions{
		UploadMaxSize: cfg.Upload.MaxSize,
		AuthRateLimit: cfg.Security.AuthRateLimit,
	})

	// 添加 API 文档
	if !cfg.System.IsProd {
		if docJson, err := apidocs.Document().MarshalJSON(); err != nil {
			l.Error("error initializing api document", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc("/api", docJson))
		}
	}

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
