// Package cachetest provides an in-memory cache.Store for tests.
package cachetest

import (
	"content-gate/app/server/cache"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var _ cache.Store = (*Memory)(nil)

// ErrDown 模拟缓存连接失败
var ErrDown = errors.New("cache is down")

type entry struct {
	value   []byte
	expires time.Time
}

type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
	down    bool

	Gets, Sets, Scans, Dels int
}

func NewMemory() *Memory {
	return &Memory{
		now:     time.Now,
		entries: map[string]entry{},
	}
}

// SetDown 切换缓存是否可用
func (m *Memory) SetDown(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.down = down
}

// Advance 让时间前进，用于验证过期
func (m *Memory) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	base := m.now()
	m.now = func() time.Time { return base.Add(d) }
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.down {
		return nil, ErrDown
	}

	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, cache.ErrMiss
	}

	return append([]byte(nil), e.value...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.down {
		return ErrDown
	}

	m.entries[key] = entry{
		value:   append([]byte(nil), value...),
		expires: m.now().Add(ttl),
	}
	return nil
}

func (m *Memory) ScanPrefix(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scans++
	if m.down {
		return nil, ErrDown
	}

	var keys []string
	for key, e := range m.entries {
		if strings.HasPrefix(key, prefix) && m.now().Before(e.expires) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dels++
	if m.down {
		return ErrDown
	}

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// Put 直接写入一条缓存，不计数
func (m *Memory) Put(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expires: m.now().Add(ttl)}
}

// Keys 返回当前未过期的 key
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key, e := range m.entries {
		if m.now().Before(e.expires) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
