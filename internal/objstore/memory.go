package objstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pouchain/docstore/internal/common"
)

// MemoryStore is an in-memory Store used in tests and local development.
// Listings are returned in lexicographic key order, paginated by PageSize
// to exercise cursor handling in callers.
type MemoryStore struct {
	mu       sync.RWMutex
	objects  map[string]*Body
	PageSize int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]*Body), PageSize: 1000}
}

// Seed stores a set of keys with small placeholder bodies. Convenient in tests.
func (m *MemoryStore) Seed(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		m.objects[k] = &Body{Data: []byte(k), ContentType: "application/octet-stream"}
	}
}

func (m *MemoryStore) List(ctx context.Context, prefix string, cursor string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	// The cursor is the last key of the previous page.
	start := 0
	if cursor != "" {
		start = sort.SearchStrings(keys, cursor)
		if start < len(keys) && keys[start] == cursor {
			start++
		}
	}

	end := start + m.PageSize
	if end > len(keys) {
		end = len(keys)
	}

	page := &Page{}
	for _, k := range keys[start:end] {
		page.Objects = append(page.Objects, Object{Key: k, Size: int64(len(m.objects[k].Data))})
	}
	if end < len(keys) {
		page.Truncated = true
		page.Cursor = keys[end-1]
	}
	return page, nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (*Body, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &Body{Data: append([]byte(nil), b.Data...), ContentType: b.ContentType}, nil
}

func (m *MemoryStore) Put(ctx context.Context, key string, body *Body) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = &Body{Data: append([]byte(nil), body.Data...), ContentType: body.ContentType}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Keys returns all stored keys in lexicographic order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
