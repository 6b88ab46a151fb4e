package blob

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore хранилище документов в памяти процесса
// Используется для локального запуска (storage.backend = "memory") и в тестах
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), body...), nil
}

func (s *MemoryStore) Overwrite(ctx context.Context, path string, body []byte) error {
	if path == "" {
		return ErrInvalidPath
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[path] = append([]byte(nil), body...)
	return nil
}

// Paths возвращает отсортированный список сохранённых путей
func (s *MemoryStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.docs))
	for p := range s.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
