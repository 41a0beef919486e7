package store

import (
	"content-gate/app/server/errs"
	"content-gate/app/server/models"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
	"time"
)

var _ FileStore = (*GormFileStore)(nil)

type GormFileStore struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormFileStore(db *gorm.DB, timeout time.Duration) *GormFileStore {
	return &GormFileStore{db: db, timeout: timeout}
}

func (s *GormFileStore) Create(ctx context.Context, file *models.StoredFile) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("create file record: %w: %w", errs.ErrUnavailable, err)
	}

	return nil
}

func (s *GormFileStore) FindByID(ctx context.Context, id uint) (*models.StoredFile, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormFileStore) FindByIDAndOwner(ctx context.Context, id uint, userID uint) (*models.StoredFile, error) {
	return s.first(ctx, "id = ? AND user_id = ?", id, userID)
}

func (s *GormFileStore) first(ctx context.Context, query string, args ...any) (*models.StoredFile, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var file models.StoredFile
	if err := s.db.WithContext(ctx).Where(query, args...).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("find file record: %w: %w", errs.ErrUnavailable, err)
	}

	return &file, nil
}

func (s *GormFileStore) ListByOwner(ctx context.Context, userID uint) ([]models.StoredFile, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var files []models.StoredFile
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list files of user %d: %w: %w", userID, errs.ErrUnavailable, err)
	}

	return files, nil
}

func (s *GormFileStore) ListAll(ctx context.Context) ([]models.StoredFile, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var files []models.StoredFile
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list files: %w: %w", errs.ErrUnavailable, err)
	}

	return files, nil
}

// Delete 按 id 和所有者一起删除，不属于该用户的记录不会被删除
func (s *GormFileStore) Delete(ctx context.Context, id uint, userID uint) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.StoredFile{})
	if res.Error != nil {
		return fmt.Errorf("delete file record %d: %w: %w", id, errs.ErrUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete file record %d: %w", id, errs.ErrNotFound)
	}

	return nil
}
