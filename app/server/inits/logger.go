package inits

import (
	"fmt"
	"go.uber.org/zap"
)

// Logger 按运行模式创建日志，name 用于区分进程（server / auditor）
func Logger(debugMode bool, name string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)

	if debugMode {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l.Named(name), nil
}
