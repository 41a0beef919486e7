package models

import "time"

type User struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	// 基础信息
	Login string `gorm:"column:login;uniqueIndex;size:40"` // 登录名，全局唯一

	// 登录与授权认证相关
	PasswordHash string `gorm:"column:pwd_hash"` // 密码，使用 argon2id 储存

	// 偏好
	Theme    Theme    `gorm:"column:theme;size:16;default:light"`
	Language Language `gorm:"column:lang;size:8;default:ru"`
}
