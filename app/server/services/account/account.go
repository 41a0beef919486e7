package account

import (
	"content-gate/app/server/constants"
	"content-gate/app/server/errs"
	"content-gate/app/server/jwt"
	"content-gate/app/server/models"
	"content-gate/app/server/store"
	"context"
	"errors"
	"fmt"
	"github.com/alexedwards/argon2id"
	"go.uber.org/zap"
	"strings"
	"time"
	"unicode/utf8"
)

type Service struct {
	l        *zap.Logger
	users    store.UserStore
	jwt      *jwt.JWT
	tokenTTL time.Duration
	params   *argon2id.Params
}

func NewService(l *zap.Logger, users store.UserStore, j *jwt.JWT, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = constants.AuthTokenDuration
	}

	return &Service{
		l:        l,
		users:    users,
		jwt:      j,
		tokenTTL: tokenTTL,
		params:   argon2id.DefaultParams,
	}
}

// Session 是登录成功后写入 cookie 的内容
type Session struct {
	UserID   uint
	Token    string
	Expires  time.Time
	Theme    models.Theme
	Language models.Language
}

func (s *Service) Register(ctx context.Context, login string, password string) (*models.User, error) {
	login = strings.TrimSpace(login)

	if n := utf8.RuneCountInString(login); n < constants.LoginMinLength || n > constants.LoginMaxLength {
		return nil, fmt.Errorf("login must be %d-%d characters: %w", constants.LoginMinLength, constants.LoginMaxLength, errs.ErrValidation)
	}
	if n := utf8.RuneCountInString(password); n < constants.PasswordMinLength || n > constants.PasswordMaxLength {
		return nil, fmt.Errorf("password must be %d-%d characters: %w", constants.PasswordMinLength, constants.PasswordMaxLength, errs.ErrValidation)
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(password, s.params)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 创建用户
	user := &models.User{
		Login:        login,
		PasswordHash: passwordHash,
		Theme:        models.DefaultTheme,
		Language:     models.DefaultLanguage,
	}
	if err = s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.l.Info("user registered", zap.Uint("userId", user.ID), zap.String("login", login))
	return user, nil
}

// Login 校验密码并签出身份凭据。用户不存在和密码错误返回同样的错误。
func (s *Service) Login(ctx context.Context, login string, password string) (*Session, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, fmt.Errorf("login and password are required: %w", errs.ErrValidation)
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.l.Warn("failed login attempt", zap.String("login", login))
			return nil, errs.ErrUnauthorized
		}
		return nil, err
	}

	// 提取密码 hash 并进行校验
	match, _, err := argon2id.CheckHash(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to check password: %w", err)
	}
	if !match {
		s.l.Warn("failed login attempt", zap.String("login", login))
		return nil, errs.ErrUnauthorized
	}

	// 签出 JWT
	expires := time.Now().Add(s.tokenTTL)
	token, err := s.jwt.SignToken(&jwt.User{
		ID:      user.ID,
		Expires: expires.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &Session{
		UserID:   user.ID,
		Token:    token,
		Expires:  expires,
		Theme:    user.Theme,
		Language: user.Language,
	}
	if !session.Theme.Valid() {
		session.Theme = models.DefaultTheme
	}
	if !session.Language.Valid() {
		session.Language = models.DefaultLanguage
	}

	s.l.Info("user logged in", zap.Uint("userId", user.ID), zap.String("login", login))
	return session, nil
}
