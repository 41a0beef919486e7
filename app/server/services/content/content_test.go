package content

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"content-gate/app/server/cache/cachetest"
	"content-gate/app/server/identity"
	"content-gate/app/server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) generate(ident identity.Identity) Payload {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
	return Generate(ident)
}

func (c *counter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func newService(t *testing.T) (*Service, *cachetest.Memory, *counter) {
	t.Helper()
	mem := cachetest.NewMemory()
	cnt := &counter{}
	return NewService(zap.NewNop(), mem, time.Minute, WithGenerator(cnt.generate)), mem, cnt
}

type envelope struct {
	OK   bool    `json:"ok"`
	Data Payload `json:"data"`
}

func decode(t *testing.T, body []byte) Payload {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.True(t, env.OK)
	return env.Data
}

func TestKeyShape(t *testing.T) {
	assert.Equal(t, "content:7:dark:en", Key(7, models.ThemeDark, models.LanguageEN))
	assert.Equal(t, "content:0:light:ru", Key(0, models.ThemeLight, models.LanguageRU))
	assert.Equal(t, "content:7:", UserPrefix(7))
}

func TestGenerate_Tables(t *testing.T) {
	p := Generate(identity.Identity{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageEN})
	assert.Equal(t, Payload{Greeting: "Hello", Theme: models.ThemeDark, Banner: "/static/dark.svg", UserID: 7}, p)

	p = Generate(Normalize(identity.Identity{UserID: 1, Theme: "sepia", Language: "jp"}))
	assert.Equal(t, "Привет", p.Greeting)
	assert.Equal(t, "/static/light.svg", p.Banner)
	assert.Equal(t, models.ThemeLight, p.Theme)
}

func TestGet_MissThenHit(t *testing.T) {
	s, mem, cnt := newService(t)
	ctx := context.Background()
	ident := identity.Identity{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageEN}

	first, err := s.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, 1, cnt.count())
	assert.Equal(t, []string{"content:7:dark:en"}, mem.Keys())

	p := decode(t, first)
	assert.Equal(t, "Hello", p.Greeting)
	assert.Equal(t, models.ThemeDark, p.Theme)
	assert.Equal(t, "/static/dark.svg", p.Banner)

	second, err := s.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, 1, cnt.count(), "hit must not recompute")
	assert.Equal(t, first, second)
}

func TestGet_HitReturnsCachedBytesVerbatim(t *testing.T) {
	s, mem, cnt := newService(t)

	cached := []byte(`{"ok":true,"data":{"greeting":"stale"}}`)
	mem.Put("content:7:dark:en", cached, time.Minute)

	got, err := s.Get(context.Background(), identity.Identity{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageEN})
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.Equal(t, 0, cnt.count())
}

func TestGet_ExpiredEntryRecomputes(t *testing.T) {
	s, mem, cnt := newService(t)
	ctx := context.Background()
	ident := identity.Identity{UserID: 3, Theme: models.ThemeLight, Language: models.LanguageFR}

	_, err := s.Get(ctx, ident)
	require.NoError(t, err)

	mem.Advance(2 * time.Minute)

	body, err := s.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt.count())
	assert.Equal(t, "Bonjour", decode(t, body).Greeting)
}

func TestGet_AnonymousUsesZero(t *testing.T) {
	s, mem, _ := newService(t)

	body, err := s.Get(context.Background(), identity.Identity{UserID: identity.AnonymousID, Theme: models.ThemeColorblind, Language: models.LanguageDE})
	require.NoError(t, err)
	assert.Equal(t, []string{"content:0:colorblind:de"}, mem.Keys())
	assert.Equal(t, uint(0), decode(t, body).UserID)
}

func TestGet_UnknownPreferencesShareDefaultKey(t *testing.T) {
	s, mem, cnt := newService(t)
	ctx := context.Background()

	_, err := s.Get(ctx, identity.Identity{UserID: 5, Theme: "sepia", Language: "jp"})
	require.NoError(t, err)
	_, err = s.Get(ctx, identity.Identity{UserID: 5, Theme: "neon", Language: "xx"})
	require.NoError(t, err)

	assert.Equal(t, []string{"content:5:light:ru"}, mem.Keys())
	assert.Equal(t, 1, cnt.count())
}

func TestGet_CacheDownDegrades(t *testing.T) {
	s, mem, cnt := newService(t)
	mem.SetDown(true)
	ctx := context.Background()
	ident := identity.Identity{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageEN}

	body, err := s.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, "/static/dark.svg", decode(t, body).Banner)

	_, err = s.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt.count())
	// 读失败后不再尝试写入
	assert.Equal(t, 0, mem.Sets)
}

func TestGet_InvalidCachedValueIsReplaced(t *testing.T) {
	s, mem, cnt := newService(t)
	mem.Put("content:7:dark:en", []byte("not json"), time.Minute)

	body, err := s.Get(context.Background(), identity.Identity{UserID: 7, Theme: models.ThemeDark, Language: models.LanguageEN})
	require.NoError(t, err)
	assert.Equal(t, 1, cnt.count())
	assert.Equal(t, "Hello", decode(t, body).Greeting)
}

func TestGet_ConcurrentMissesAreIdempotent(t *testing.T) {
	s, _, _ := newService(t)
	ident := identity.Identity{UserID: 9, Theme: models.ThemeDark, Language: models.LanguageES}

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, err := s.Get(context.Background(), ident)
			assert.NoError(t, err)
			results[i] = body
		}(i)
	}
	wg.Wait()

	for _, body := range results[1:] {
		assert.Equal(t, results[0], body)
	}
}

func TestInvalidateUser_SweepsAllCombinations(t *testing.T) {
	s, mem, _ := newService(t)
	ctx := context.Background()

	for _, theme := range models.Themes {
		for _, lang := range []models.Language{models.LanguageEN, models.LanguageRU} {
			_, err := s.Get(ctx, identity.Identity{UserID: 7, Theme: theme, Language: lang})
			require.NoError(t, err)
		}
	}
	_, err := s.Get(ctx, identity.Identity{UserID: 70, Theme: models.ThemeDark, Language: models.LanguageEN})
	require.NoError(t, err)

	n, err := s.InvalidateUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	left, err := mem.ScanPrefix(ctx, "content:7:")
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Equal(t, []string{"content:70:dark:en"}, mem.Keys())
}

func TestInvalidateUser_CacheDown(t *testing.T) {
	s, mem, _ := newService(t)
	mem.SetDown(true)

	_, err := s.InvalidateUser(context.Background(), 7)
	assert.ErrorIs(t, err, cachetest.ErrDown)
}
