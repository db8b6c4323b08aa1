package store

import (
	"context"
	"strings"
	"sync"

	"biblio/internal/member/models"
	"biblio/pkg/platform/sentinel"
)

// InMemory is the process-lifetime member store. The email uniqueness scan
// and the insert share one critical section so two concurrent registrations
// of the same address cannot both pass the check.
type InMemory struct {
	mu      sync.RWMutex
	members map[string]models.Member
}

func NewInMemory() *InMemory {
	return &InMemory{members: make(map[string]models.Member)}
}

func (s *InMemory) List(_ context.Context) ([]*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Member, 0, len(s.members))
	for _, m := range s.members {
		m := m
		out = append(out, &m)
	}
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.members[id]; ok {
		return &m, nil
	}
	return nil, sentinel.ErrNotFound
}

// CreateIfEmailAvailable inserts the member unless any existing record holds
// the same email, case-insensitively.
func (s *InMemory) CreateIfEmailAvailable(_ context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(m.Email, "") {
		return sentinel.ErrAlreadyUsed
	}
	s.members[m.ID] = *m
	return nil
}

// UpdateIfEmailAvailable replaces name and email in place. The email may
// collide only with the member's own current address.
func (s *InMemory) UpdateIfEmailAvailable(_ context.Context, id, name, email string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if s.emailTakenLocked(email, id) {
		return nil, sentinel.ErrAlreadyUsed
	}
	m.Name = name
	m.Email = email
	s.members[id] = m
	return &m, nil
}

func (s *InMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.members, id)
	return nil
}

// emailTakenLocked reports whether email belongs to any member other than
// exceptID. Must be called while holding s.mu.
func (s *InMemory) emailTakenLocked(email, exceptID string) bool {
	for _, existing := range s.members {
		if existing.ID != exceptID && strings.EqualFold(existing.Email, email) {
			return true
		}
	}
	return false
}
