package contentRepo

import (
	"context"
	"sync"

	"sitecms/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryContentRepo is an in-process ContentRepository used by tests and local runs
// without a database. InsertErr, when set, is returned by every Insert.
type MemoryContentRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]models.Document

	InsertErr error
}

func NewMemoryContentRepo() *MemoryContentRepo {
	return &MemoryContentRepo{store: make(map[primitive.ObjectID]models.Document)}
}

func (m *MemoryContentRepo) Insert(_ context.Context, doc models.Document) (*models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	id := primitive.NewObjectID()
	stored := models.Document{"_id": id}
	for k, v := range doc {
		if k != "_id" {
			stored[k] = v
		}
	}
	m.store[id] = stored
	m.order = append(m.order, id)
	return &models.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

func (m *MemoryContentRepo) List(context.Context) ([]models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Document, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.store[id])
	}
	return out, nil
}

func (m *MemoryContentRepo) GetByID(_ context.Context, id primitive.ObjectID) (models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return d, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryContentRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return &models.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *MemoryContentRepo) Count(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}
