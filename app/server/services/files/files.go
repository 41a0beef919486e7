// Package files manages the lifecycle of user-owned PDF files across blob
// storage and the relational store: absent -> uploading -> stored -> deleted.
package files

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/errs"
	"content-gate/app/server/models"
	"content-gate/app/server/storage"
	"content-gate/app/server/store"
	"context"
	"errors"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"io"
	"time"
)

type Options struct {
	MaxSize              int64 // 声明大小的上限
	DownloadRequireOwner bool  // 下载是否只允许所有者
}

type Manager struct {
	l       *zap.Logger
	files   store.FileStore
	storage storage.Storage
	opts    Options

	newName         func() string
	rollbackTimeout time.Duration
}

func NewManager(l *zap.Logger, files store.FileStore, s storage.Storage, opts Options) *Manager {
	if opts.MaxSize <= 0 {
		opts.MaxSize = constants.UploadMaxSizeDefault
	}

	return &Manager{
		l:       l,
		files:   files,
		storage: s,
		opts:    opts,
		newName: func() string {
			return uuid.New().String() + constants.UploadStorageNameSuffix
		},
		rollbackTimeout: constants.UploadRollbackTimeout,
	}
}

// Upload 是传输层给出的上传内容，类型和大小都是客户端声明的，不可信
type Upload struct {
	Body         io.Reader
	ContentType  string
	Size         int64
	OriginalName string
}

type Download struct {
	Body         io.ReadCloser
	Size         int64
	ContentType  string
	OriginalName string
}

func (m *Manager) validate(up *Upload) error {
	if up.ContentType != constants.UploadAllowedType {
		return fmt.Errorf("only PDF files are allowed, got %q: %w", up.ContentType, errs.ErrValidation)
	}
	if up.Size <= 0 {
		return fmt.Errorf("empty file: %w", errs.ErrValidation)
	}
	if up.Size > m.opts.MaxSize {
		return fmt.Errorf("file is larger than %s: %w", humanize.IBytes(uint64(m.opts.MaxSize)), errs.ErrValidation)
	}
	if up.OriginalName == "" {
		return fmt.Errorf("file name is empty: %w", errs.ErrValidation)
	}
	return nil
}

// Upload 写入数据再写记录；记录写入失败时删除已写入的数据
func (m *Manager) Upload(ctx context.Context, userID uint, up *Upload) (*models.StoredFile, error) {
	if userID == 0 {
		return nil, errs.ErrUnauthorized
	}
	if err := m.validate(up); err != nil {
		return nil, err
	}

	// 存储名和用户给的文件名无关
	storageName := m.newName()

	if err := m.storage.Put(ctx, storageName, io.LimitReader(up.Body, up.Size+1), up.Size); err != nil {
		if errors.Is(err, storage.ErrSizeMismatch) {
			return nil, fmt.Errorf("file size does not match the declared %d bytes: %w", up.Size, errs.ErrValidation)
		}
		m.l.Error("failed to store file", zap.Uint("userId", userID), zap.String("storageName", storageName), zap.Error(err))
		return nil, fmt.Errorf("failed to store file: %w: %w", errs.ErrUnavailable, err)
	}

	file := &models.StoredFile{
		UserID:       userID,
		StorageName:  storageName,
		OriginalName: up.OriginalName,
		Size:         up.Size,
	}
	if err := m.files.Create(ctx, file); err != nil {
		m.l.Error("failed to create file record, rolling back stored bytes", zap.Uint("userId", userID), zap.String("storageName", storageName), zap.Error(err))

		// 回滚时原请求可能已经超时，单独使用一个有期限的 context
		rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.rollbackTimeout)
		defer cancel()
		if rmErr := m.storage.Remove(rbCtx, storageName); rmErr != nil {
			m.l.Error("orphaned file left in storage", zap.String("storageName", storageName), zap.Error(rmErr))
		}

		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	m.l.Info("file uploaded", zap.Uint("id", file.ID), zap.Uint("userId", userID), zap.String("originalName", file.OriginalName), zap.String("size", humanize.IBytes(uint64(file.Size))))
	return file, nil
}

// Download 打开文件数据。 ownerID 只在要求所有者时使用。
func (m *Manager) Download(ctx context.Context, fileID uint, ownerID uint) (*Download, error) {
	var (
		file *models.StoredFile
		err  error
	)

	if m.opts.DownloadRequireOwner {
		if ownerID == 0 {
			return nil, errs.ErrUnauthorized
		}
		file, err = m.files.FindByIDAndOwner(ctx, fileID, ownerID)
	} else {
		file, err = m.files.FindByID(ctx, fileID)
	}
	if err != nil {
		return nil, err
	}

	body, size, err := m.storage.Open(ctx, file.StorageName)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			// 有记录但没有数据，数据不一致
			m.l.Error("file record exists but bytes are missing", zap.Uint("id", file.ID), zap.String("storageName", file.StorageName))
			return nil, fmt.Errorf("file %d bytes missing: %w", file.ID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open file %d: %w: %w", file.ID, errs.ErrUnavailable, err)
	}

	m.l.Info("file downloaded", zap.Uint("id", file.ID), zap.String("originalName", file.OriginalName))
	return &Download{
		Body:         body,
		Size:         size,
		ContentType:  constants.UploadAllowedType,
		OriginalName: file.OriginalName,
	}, nil
}

// Delete 不存在和不属于该用户返回同样的结果
func (m *Manager) Delete(ctx context.Context, fileID uint, userID uint) error {
	if userID == 0 {
		return errs.ErrUnauthorized
	}

	file, err := m.files.FindByIDAndOwner(ctx, fileID, userID)
	if err != nil {
		return err
	}

	// 数据删除失败不阻止删除记录，记录才是“文件已删除”的依据
	if err = m.storage.Remove(ctx, file.StorageName); err != nil {
		m.l.Error("orphaned file left in storage", zap.Uint("id", file.ID), zap.String("storageName", file.StorageName), zap.Error(err))
	}

	if err = m.files.Delete(ctx, file.ID, userID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	m.l.Info("file deleted", zap.Uint("id", file.ID), zap.Uint("userId", userID), zap.String("originalName", file.OriginalName))
	return nil
}

func (m *Manager) List(ctx context.Context, userID uint) ([]models.StoredFile, error) {
	if userID == 0 {
		return nil, errs.ErrUnauthorized
	}

	return m.files.ListByOwner(ctx, userID)
}
