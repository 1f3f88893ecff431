package storage

import (
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-process MediaStore for tests. UploadErr and DeleteErr, when set,
// are returned by the matching operation.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte

	UploadErr error
	DeleteErr error
	Deleted   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

func (m *MemoryStore) Upload(_ context.Context, in UploadInput) (*UploadResult, error) {
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[in.PublicID] = data
	return &UploadResult{URL: "https://media.test/" + in.PublicID, PublicID: in.PublicID}, nil
}

func (m *MemoryStore) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, publicID)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.files, publicID)
	return nil
}

// Has reports whether publicID is currently stored.
func (m *MemoryStore) Has(publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[publicID]
	return ok
}

// Len returns the number of stored files.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
