package document

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps documents in process memory. Development fallback
// when no S3 endpoint is configured; contents are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, mineID, name string, content []byte) error {
	mineID = strings.TrimSpace(mineID)
	name = strings.TrimSpace(name)
	if mineID == "" || name == "" {
		return fmt.Errorf("mine id and name are required")
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	s.mu.Lock()
	s.data[objectKey(mineID, name)] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, mineID, name string) ([]byte, error) {
	s.mu.RLock()
	content, ok := s.data[objectKey(mineID, name)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp, nil
}

func (s *MemoryStore) GetURL(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf("memory store cannot presign URLs")
}

func (s *MemoryStore) List(_ context.Context, mineID string) ([]string, error) {
	prefix := strings.TrimSpace(mineID) + "/"
	s.mu.RLock()
	names := make([]string, 0, len(s.data))
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			names = append(names, strings.TrimPrefix(key, prefix))
		}
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}
