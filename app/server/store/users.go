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

var _ UserStore = (*GormUserStore)(nil)

type GormUserStore struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormUserStore(db *gorm.DB, timeout time.Duration) *GormUserStore {
	return &GormUserStore{db: db, timeout: timeout}
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user %s: %w", user.Login, errs.ErrConflict)
		}
		return fmt.Errorf("create user %s: %w: %w", user.Login, errs.ErrUnavailable, err)
	}

	return nil
}

func (s *GormUserStore) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.first(ctx, "login = ?", login)
}

func (s *GormUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormUserStore) first(ctx context.Context, query string, arg any) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w: %w", errs.ErrUnavailable, err)
	}

	return &user, nil
}

func (s *GormUserStore) UpdateTheme(ctx context.Context, id uint, theme models.Theme) error {
	return s.updateColumn(ctx, id, "theme", string(theme))
}

func (s *GormUserStore) UpdateLanguage(ctx context.Context, id uint, language models.Language) error {
	return s.updateColumn(ctx, id, "lang", string(language))
}

// updateColumn 按主键更新单行的单个字段
func (s *GormUserStore) updateColumn(ctx context.Context, id uint, column string, value string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn(column, value)
	if res.Error != nil {
		return fmt.Errorf("update user %d %s: %w: %w", id, column, errs.ErrUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update user %d %s: %w", id, column, errs.ErrNotFound)
	}

	return nil
}
