// Package content serves the small personalized payload (greeting, banner,
// theme echo) and keeps it in the key-value cache.
package content

import (
	"content-gate/app/server/cache"
	"content-gate/app/server/constants"
	"content-gate/app/server/identity"
	"content-gate/app/server/models"
	"content-gate/app/server/response"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"time"
)

type Payload struct {
	Greeting string       `json:"greeting"`
	Theme    models.Theme `json:"theme"`
	Banner   string       `json:"banner"`
	UserID   uint         `json:"userId"`
}

var greetings = map[models.Language]string{
	models.LanguageRU: "Привет",
	models.LanguageEN: "Hello",
	models.LanguageES: "Hola",
	models.LanguageFR: "Bonjour",
	models.LanguageDE: "Hallo",
}

var banners = map[models.Theme]string{
	models.ThemeLight:      "/static/light.svg",
	models.ThemeDark:       "/static/dark.svg",
	models.ThemeColorblind: "/static/cb.svg",
}

// Generate 只依赖 (userId, theme, language)
func Generate(ident identity.Identity) Payload {
	return Payload{
		Greeting: greetings[ident.Language],
		Theme:    ident.Theme,
		Banner:   banners[ident.Theme],
		UserID:   ident.UserID,
	}
}

// Normalize 把无法识别的偏好换成默认值，缓存 key 的组合数因此是有限的
func Normalize(ident identity.Identity) identity.Identity {
	if !ident.Theme.Valid() {
		ident.Theme = models.DefaultTheme
	}
	if !ident.Language.Valid() {
		ident.Language = models.DefaultLanguage
	}
	return ident
}

func Key(userID uint, theme models.Theme, language models.Language) string {
	return fmt.Sprintf(constants.CacheKeyContent, userID, theme, language)
}

func UserPrefix(userID uint) string {
	return fmt.Sprintf(constants.CacheKeyContentPrefix, userID)
}

type Option func(*Service)

// WithGenerator 替换内容生成函数
func WithGenerator(gen func(identity.Identity) Payload) Option {
	return func(s *Service) {
		s.generate = gen
	}
}

type Service struct {
	l        *zap.Logger
	cache    cache.Store
	ttl      time.Duration
	generate func(identity.Identity) Payload
}

func NewService(l *zap.Logger, c cache.Store, ttl time.Duration, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = constants.CacheExpireContent
	}

	s := &Service{
		l:        l,
		cache:    c,
		ttl:      ttl,
		generate: Generate,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get 返回序列化好的响应。命中缓存时原样返回，未命中时生成并写入缓存。
// 缓存不可用只会跳过缓存，不会变成错误。
func (s *Service) Get(ctx context.Context, ident identity.Identity) ([]byte, error) {
	ident = Normalize(ident)
	cacheKey := Key(ident.UserID, ident.Theme, ident.Language)

	// 查询缓存
	cacheAvailable := true
	if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			cacheAvailable = false
			s.l.Warn("cache unavailable, serving without cache", zap.String("key", cacheKey), zap.Error(err))
		}
	} else if !json.Valid(cached) {
		// 无效的缓存，清理掉
		s.l.Error("invalid cached content", zap.String("key", cacheKey), zap.ByteString("cached", cached))
		if err := s.cache.Del(ctx, cacheKey); err != nil {
			s.l.Warn("failed to drop invalid cached content", zap.String("key", cacheKey), zap.Error(err))
		}
	} else {
		s.l.Debug("content served from cache", zap.String("key", cacheKey))
		return cached, nil
	}

	// 生成内容
	body, err := json.Marshal(response.Success(s.generate(ident), ""))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content: %w", err)
	}

	// 写入缓存，失败不影响返回
	if cacheAvailable {
		if err := s.cache.Set(ctx, cacheKey, body, s.ttl); err != nil {
			s.l.Warn("failed to cache content", zap.String("key", cacheKey), zap.Error(err))
		} else {
			s.l.Debug("content cached", zap.String("key", cacheKey))
		}
	}

	return body, nil
}

// InvalidateUser 删除该用户所有主题和语言组合下的缓存
func (s *Service) InvalidateUser(ctx context.Context, userID uint) (int, error) {
	keys, err := s.cache.ScanPrefix(ctx, UserPrefix(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to scan cached content of user %d: %w", userID, err)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	if err = s.cache.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("failed to delete cached content of user %d: %w", userID, err)
	}

	return len(keys), nil
}
