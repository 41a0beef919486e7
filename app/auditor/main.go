package main

import (
	"content-gate/app/auditor/handlers"
	"content-gate/app/auditor/inits"
	server "content-gate/app/server/inits"
	"content-gate/app/server/services/files"
	"content-gate/app/server/store"
	"context"
	"fmt"
	"go.uber.org/zap"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := server.Logger(!cfg.IsProd, "auditor")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := server.DB(cfg.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化文件存储
	blobs, err := server.Storage(context.Background(), cfg.Storage)
	if err != nil {
		l.Fatal("error initializing file storage", zap.Error(err))
	}

	// 开启检查循环
	fm := files.NewManager(l.Named("files"), store.NewGormFileStore(db, cfg.DBTimeout), blobs, files.Options{})
	handlerApp := handlers.NewApp(cfg, l, fm)
	handlerApp.Start()

	// 等待退出信号
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	l.Info("shutting down the auditor")
	handlerApp.Stop()
}
