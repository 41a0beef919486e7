// Package preference persists theme and language changes and sweeps the
// user's cached content afterwards.
package preference

import (
	"content-gate/app/server/errs"
	"content-gate/app/server/models"
	"content-gate/app/server/store"
	"context"
	"fmt"
	"go.uber.org/zap"
)

// Invalidator 删除一个用户的全部缓存内容
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID uint) (int, error)
}

type Service struct {
	l           *zap.Logger
	users       store.UserStore
	invalidator Invalidator
}

func NewService(l *zap.Logger, users store.UserStore, invalidator Invalidator) *Service {
	return &Service{
		l:           l,
		users:       users,
		invalidator: invalidator,
	}
}

func (s *Service) SetTheme(ctx context.Context, userID uint, theme models.Theme) error {
	if userID == 0 {
		return errs.ErrUnauthorized
	}
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q: %w", theme, errs.ErrValidation)
	}

	// 先落库，完成后再清理缓存
	if err := s.users.UpdateTheme(ctx, userID, theme); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	s.invalidate(ctx, userID)

	s.l.Info("theme updated", zap.Uint("userId", userID), zap.String("theme", string(theme)))
	return nil
}

func (s *Service) SetLanguage(ctx context.Context, userID uint, language models.Language) error {
	if userID == 0 {
		return errs.ErrUnauthorized
	}
	if !language.Valid() {
		return fmt.Errorf("unknown language %q: %w", language, errs.ErrValidation)
	}

	if err := s.users.UpdateLanguage(ctx, userID, language); err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}

	s.invalidate(ctx, userID)

	s.l.Info("language updated", zap.Uint("userId", userID), zap.String("language", string(language)))
	return nil
}

// invalidate 失败只记录，偏好仍然算修改成功，最坏情况多一个 TTL 的旧内容
func (s *Service) invalidate(ctx context.Context, userID uint) {
	n, err := s.invalidator.InvalidateUser(ctx, userID)
	if err != nil {
		s.l.Warn("failed to clear user cache", zap.Uint("userId", userID), zap.Error(err))
		return
	}

	s.l.Debug("user cache cleared", zap.Uint("userId", userID), zap.Int("keys", n))
}
