package media

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore 进程内存储，用于本地运行与测试
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailUpload / FailDelete 注入故障
	FailUpload bool
	FailDelete bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(ctx context.Context, u Upload) (Ref, error) {
	if s.FailUpload {
		return Ref{}, ErrUploadFailed
	}
	var data []byte
	if u.Body != nil {
		b, err := io.ReadAll(u.Body)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		data = b
	}
	key := objectKey(u)
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return Ref{Key: key, URL: publicURL("memory://", "local", key)}, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if s.FailDelete {
		return fmt.Errorf("delete %s: injected failure", key)
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Has 对象是否存在
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// Put 直接放入对象（测试预置）
func (s *MemoryStore) Put(key string, data []byte) {
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
}

// Len 当前对象数
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
