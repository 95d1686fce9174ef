package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"battery-lab-api/models"

	"github.com/google/uuid"
)

var _ Store = (*MemoryStore)(nil)

// collection keeps records by id and remembers insertion order.
type collection[T any] struct {
	byID  map[string]T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byID: make(map[string]T)}
}

func (c *collection[T]) put(id string, v T) {
	if _, exists := c.byID[id]; !exists {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.byID[id]
	return v, ok
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true
}

func (c *collection[T]) list(keep func(T) bool) []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		v := c.byID[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// MemoryStore keeps every collection in process memory behind one RWMutex.
type MemoryStore struct {
	mu          sync.RWMutex
	users       *collection[models.User]
	materials   *collection[models.Material]
	predictions *collection[models.Prediction]
	candidates  *collection[models.Candidate]
	dataset     *collection[models.DatasetEntry]
	nowFn       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       newCollection[models.User](),
		materials:   newCollection[models.Material](),
		predictions: newCollection[models.Prediction](),
		candidates:  newCollection[models.Candidate](),
		dataset:     newCollection[models.DatasetEntry](),
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for createdAt stamps.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = now
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users.byID {
		if existing.Username == user.Username {
			return nil, ErrUsernameTaken
		}
	}
	user.ID = uuid.NewString()
	s.users.put(user.ID, user)
	return &user, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users.get(id); ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateMaterial(_ context.Context, material models.Material) (*models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	material.ID = uuid.NewString()
	material.CreatedAt = s.nowFn()
	s.materials.put(material.ID, material)
	return &material, nil
}

func (s *MemoryStore) GetMaterial(_ context.Context, id string) (*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.materials.get(id); ok {
		return &m, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListMaterials(_ context.Context) ([]models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.materials.list(nil), nil
}

func (s *MemoryStore) DeleteMaterial(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materials.remove(id), nil
}

func (s *MemoryStore) CreatePrediction(_ context.Context, prediction models.Prediction) (*models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prediction.ID = uuid.NewString()
	prediction.CreatedAt = s.nowFn()
	s.predictions.put(prediction.ID, prediction)
	return &prediction, nil
}

func (s *MemoryStore) GetPrediction(_ context.Context, id string) (*models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.predictions.get(id); ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListPredictionsByMaterial(_ context.Context, materialID string) ([]models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predictions.list(func(p models.Prediction) bool {
		return p.MaterialID == materialID
	}), nil
}

func (s *MemoryStore) CreateCandidate(_ context.Context, candidate models.Candidate) (*models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.insertCandidate(candidate)
	return &c, nil
}

// CreateCandidates inserts the batch under a single lock and returns it in
// input order.
func (s *MemoryStore) CreateCandidates(_ context.Context, candidates []models.Candidate) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, s.insertCandidate(c))
	}
	return out, nil
}

func (s *MemoryStore) insertCandidate(c models.Candidate) models.Candidate {
	c.ID = uuid.NewString()
	c.CreatedAt = s.nowFn()
	s.candidates.put(c.ID, c)
	return c
}

func (s *MemoryStore) ListCandidates(_ context.Context) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates.list(nil), nil
}

func (s *MemoryStore) CreateDatasetEntry(_ context.Context, entry models.DatasetEntry) (*models.DatasetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = uuid.NewString()
	s.dataset.put(entry.ID, entry)
	return &entry, nil
}

func (s *MemoryStore) GetDatasetEntry(_ context.Context, id string) (*models.DatasetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.dataset.get(id); ok {
		return &e, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListDatasetEntries(_ context.Context, q DatasetQuery) ([]models.DatasetEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, total := ApplyDatasetQuery(s.dataset.list(nil), q)
	return entries, total, nil
}
