package inits

import (
	"content-gate/app/auditor/config"
	"content-gate/app/server/constants"
	server "content-gate/app/server/inits"
	"fmt"
	"os"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.DBConnectionString = dbconn
	}

	var err error

	if cfg.DBTimeout, err = server.EnvDuration("DB_TIMEOUT", constants.DBDefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.Interval, err = server.EnvDuration("AUDIT_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = server.EnvDuration("AUDIT_TIMEOUT", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.Storage, err = server.StorageConfig(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
