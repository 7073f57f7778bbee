// Package session keeps the per-session page state: the last query a user submitted.
package session

import (
	"context"
	"sync"
)

// Store 会话状态存储接口
type Store interface {
	// Get returns the last query stored for the session, or "" when there is none.
	Get(ctx context.Context, id string) (string, error)
	// Set overwrites the session's query.
	Set(ctx context.Context, id, query string) error
	// Delete forgets the session.
	Delete(ctx context.Context, id string) error
}

// MemoryStore 内存实现的会话存储
type MemoryStore struct {
	mu      sync.RWMutex
	queries map[string]string
}

// NewMemoryStore 创建一个新的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		queries: make(map[string]string),
	}
}

// Get 获取会话的最后一次输入
func (s *MemoryStore) Get(ctx context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queries[id], nil
}

// Set 覆盖会话的输入
func (s *MemoryStore) Set(ctx context.Context, id, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[id] = query
	return nil
}

// Delete 删除会话
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.queries, id)
	return nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queries)
}
