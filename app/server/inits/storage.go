package inits

import (
	"content-gate/app/server/config"
	"content-gate/app/server/storage"
	"context"
	"fmt"
)

func Storage(ctx context.Context, cfg config.Storage) (storage.Storage, error) {
	switch cfg.Backend {
	case "s3":
		s, err := storage.NewS3(ctx, storage.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 storage: %w", err)
		}
		return s, nil
	case "local", "":
		s, err := storage.NewLocal(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to init local storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
