package models

import "time"

type StoredFile struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	UserID       uint      `gorm:"column:user_id;index"`                    // 所有者
	StorageName  string    `gorm:"column:storage_name;uniqueIndex;size:64"` // 系统生成的存储名，与用户输入无关
	OriginalName string    `gorm:"column:original_name"`                    // 用户上传时的文件名，只用于展示和下载
	Size         int64     `gorm:"column:size"`                             // 字节数
	UploadedAt   time.Time `gorm:"column:uploaded_at;autoCreateTime;index"`
}
