package mocks

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MockCache implements service.StatsCache, service.TokenBlacklist and
// middleware.TokenChecker with an in-memory map. TTLs are recorded but
// never expire on their own; tests assert on them directly.
type MockCache struct {
	GetFn            func(ctx context.Context, key string) (string, bool, error)
	SetFn            func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteByPrefixFn func(ctx context.Context, prefix string) error

	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration

	// DeletedPrefixes records every DeleteByPrefix call in order.
	DeletedPrefixes []string

	// Revoked records tokens passed to BlacklistToken with their TTL.
	Revoked map[string]time.Duration
}

// NewMockCache creates an empty mock cache.
func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
		Revoked: make(map[string]time.Duration),
	}
}

// Get implements service.StatsCache.
func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.entries[key]
	return val, ok, nil
}

// Set implements service.StatsCache.
func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.ttls[key] = ttl
	return nil
}

// DeleteByPrefix implements service.StatsCache.
func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if m.DeleteByPrefixFn != nil {
		return m.DeleteByPrefixFn(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletedPrefixes = append(m.DeletedPrefixes, prefix)
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
			delete(m.ttls, key)
		}
	}
	return nil
}

// TTL returns the TTL recorded for key by the last Set.
func (m *MockCache) TTL(key string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl, ok := m.ttls[key]
	return ttl, ok
}

// BlacklistToken implements service.TokenBlacklist.
func (m *MockCache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl <= 0 {
		return nil
	}
	m.Revoked[token] = ttl
	return nil
}

// IsTokenBlacklisted implements middleware.TokenChecker.
func (m *MockCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Revoked[token]
	return ok, nil
}
