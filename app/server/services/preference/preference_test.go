package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"content-gate/app/server/cache/cachetest"
	"content-gate/app/server/errs"
	"content-gate/app/server/identity"
	"content-gate/app/server/models"
	"content-gate/app/server/services/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUsers) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) UpdateTheme(ctx context.Context, id uint, theme models.Theme) error {
	return m.Called(ctx, id, theme).Error(0)
}

func (m *mockUsers) UpdateLanguage(ctx context.Context, id uint, language models.Language) error {
	return m.Called(ctx, id, language).Error(0)
}

// orderedInvalidator 记录调用时数据库是否已经更新
type orderedInvalidator struct {
	users   *mockUsers
	calls   int
	sawDone []bool
	err     error
}

func (o *orderedInvalidator) InvalidateUser(_ context.Context, _ uint) (int, error) {
	o.calls++
	done := false
	for _, call := range o.users.Calls {
		if call.Method == "UpdateTheme" || call.Method == "UpdateLanguage" {
			done = true
		}
	}
	o.sawDone = append(o.sawDone, done)
	return 0, o.err
}

func TestSetTheme_UpdatesThenInvalidates(t *testing.T) {
	users := &mockUsers{}
	inv := &orderedInvalidator{users: users}
	s := NewService(zap.NewNop(), users, inv)
	ctx := context.Background()

	users.On("UpdateTheme", ctx, uint(7), models.ThemeColorblind).Return(nil).Once()

	require.NoError(t, s.SetTheme(ctx, 7, models.ThemeColorblind))
	users.AssertExpectations(t)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, []bool{true}, inv.sawDone)
}

func TestSetTheme_InvalidValue(t *testing.T) {
	users := &mockUsers{}
	inv := &orderedInvalidator{users: users}
	s := NewService(zap.NewNop(), users, inv)

	err := s.SetTheme(context.Background(), 7, models.Theme("sepia"))
	assert.ErrorIs(t, err, errs.ErrValidation)
	users.AssertNotCalled(t, "UpdateTheme", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, inv.calls)
}

func TestSetTheme_Anonymous(t *testing.T) {
	users := &mockUsers{}
	inv := &orderedInvalidator{users: users}
	s := NewService(zap.NewNop(), users, inv)

	err := s.SetTheme(context.Background(), 0, models.ThemeDark)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, 0, inv.calls)
}

func TestSetTheme_StoreFailureAborts(t *testing.T) {
	users := &mockUsers{}
	inv := &orderedInvalidator{users: users}
	s := NewService(zap.NewNop(), users, inv)
	ctx := context.Background()

	users.On("UpdateTheme", ctx, uint(7), models.ThemeDark).
		Return(fmt.Errorf("update: %w: %w", errs.ErrUnavailable, errors.New("timeout"))).Once()

	err := s.SetTheme(ctx, 7, models.ThemeDark)
	assert.ErrorIs(t, err, errs.ErrUnavailable)
	assert.Equal(t, 0, inv.calls)
}

func TestSetTheme_InvalidationFailureIsSwallowed(t *testing.T) {
	users := &mockUsers{}
	inv := &orderedInvalidator{users: users, err: cachetest.ErrDown}
	s := NewService(zap.NewNop(), users, inv)
	ctx := context.Background()

	users.On("UpdateTheme", ctx, uint(7), models.ThemeDark).Return(nil).Once()

	assert.NoError(t, s.SetTheme(ctx, 7, models.ThemeDark))
	assert.Equal(t, 1, inv.calls)
}

func TestSetLanguage(t *testing.T) {
	users := &mockUsers{}
	inv := &orderedInvalidator{users: users}
	s := NewService(zap.NewNop(), users, inv)
	ctx := context.Background()

	users.On("UpdateLanguage", ctx, uint(7), models.LanguageDE).Return(nil).Once()

	require.NoError(t, s.SetLanguage(ctx, 7, models.LanguageDE))
	assert.Equal(t, []bool{true}, inv.sawDone)

	err := s.SetLanguage(ctx, 7, models.Language("jp"))
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, 1, inv.calls)
}

func TestSetLanguage_MissingUser(t *testing.T) {
	users := &mockUsers{}
	inv := &orderedInvalidator{users: users}
	s := NewService(zap.NewNop(), users, inv)
	ctx := context.Background()

	users.On("UpdateLanguage", ctx, uint(404), models.LanguageEN).Return(errs.ErrNotFound).Once()

	err := s.SetLanguage(ctx, 404, models.LanguageEN)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, 0, inv.calls)
}

// 主题修改后立刻读取，不能拿到旧主题下生成的内容
func TestThemeChange_NoStaleReadAfterSweep(t *testing.T) {
	mem := cachetest.NewMemory()
	contents := content.NewService(zap.NewNop(), mem, time.Minute)
	users := &mockUsers{}
	s := NewService(zap.NewNop(), users, contents)
	ctx := context.Background()

	users.On("UpdateTheme", ctx, uint(7), models.ThemeColorblind).Return(nil).Once()

	// 旧主题和其他语言下的缓存
	for _, ident := range []identity.Identity{
		{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageEN},
		{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageRU},
		{UserID: 7, Theme: models.ThemeLight, Language: models.LanguageEN},
		{UserID: 8, Theme: models.ThemeDark, Language: models.LanguageEN},
	} {
		_, err := contents.Get(ctx, ident)
		require.NoError(t, err)
	}

	require.NoError(t, s.SetTheme(ctx, 7, models.ThemeColorblind))

	left, err := mem.ScanPrefix(ctx, "content:7:")
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Equal(t, []string{"content:8:dark:en"}, mem.Keys())

	body, err := contents.Get(ctx, identity.Identity{UserID: 7, Theme: models.ThemeColorblind, Language: models.LanguageEN})
	require.NoError(t, err)

	var env struct {
		Data content.Payload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, "/static/cb.svg", env.Data.Banner)
	assert.Equal(t, models.ThemeColorblind, env.Data.Theme)
}

// cookie 还是旧主题时，读到的是按 cookie 计算的 key 重新生成的内容，
// 清理之前的旧缓存不会再出现
func TestThemeChange_StaleCookieWindow(t *testing.T) {
	mem := cachetest.NewMemory()
	contents := content.NewService(zap.NewNop(), mem, time.Minute)
	users := &mockUsers{}
	s := NewService(zap.NewNop(), users, contents)
	ctx := context.Background()

	stale := identity.Identity{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageEN}
	before, err := contents.Get(ctx, stale)
	require.NoError(t, err)

	users.On("UpdateTheme", ctx, uint(7), models.ThemeLight).Return(nil).Once()
	require.NoError(t, s.SetTheme(ctx, 7, models.ThemeLight))

	// 旧 cookie 的请求重新计算（内容相同，因为内容只取决于 key）
	after, err := contents.Get(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, mem.Sets)
}
