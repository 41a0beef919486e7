package inits

import (
	"content-gate/app/server/models"
	"fmt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{
		SkipDefaultTransaction: true, // 所有写入都是单行操作
		TranslateError:         true, // 唯一约束冲突转换为 gorm.ErrDuplicatedKey
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.StoredFile{},
	)
}
