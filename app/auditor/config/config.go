package config

import (
	server "content-gate/app/server/config"
	"time"
)

type Config struct {
	// 基础配置
	IsProd bool

	// 数据库
	DBConnectionString string
	DBTimeout          time.Duration

	// 检查配置
	Interval time.Duration // 两次检查之间的间隔
	Timeout  time.Duration // 单次检查的超时时间

	// 文件存储，与服务端一致
	Storage server.Storage
}
