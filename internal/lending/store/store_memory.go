package store

import (
	"context"
	"sync"

	"biblio/internal/lending/models"
	"biblio/pkg/platform/sentinel"
)

// InMemory is the process-lifetime lending store. Records are append-mostly:
// the only mutation is setting the return timestamp, which runs through
// Execute so a racing double return mutates at most once.
type InMemory struct {
	mu       sync.RWMutex
	lendings map[string]models.Lending
}

func NewInMemory() *InMemory {
	return &InMemory{lendings: make(map[string]models.Lending)}
}

func (s *InMemory) Create(_ context.Context, l *models.Lending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lendings[l.ID] = *l
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Lending, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.lendings[id]; ok {
		return &l, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]*models.Lending, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Lending, 0, len(s.lendings))
	for _, l := range s.lendings {
		l := l
		out = append(out, &l)
	}
	return out, nil
}

// Delete removes a record. Only the engine's lend compensation path uses
// this; returned loans are never deleted.
func (s *InMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lendings[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.lendings, id)
	return nil
}

// Execute runs validate then mutate on the record under the store lock. A
// validate error aborts the mutation and leaves the record untouched.
func (s *InMemory) Execute(_ context.Context, id string, validate func(*models.Lending) error, mutate func(*models.Lending)) (*models.Lending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lendings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(&l); err != nil {
			return nil, err
		}
	}
	mutate(&l)
	s.lendings[id] = l
	return &l, nil
}
