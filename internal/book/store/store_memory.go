package store

import (
	"context"
	"sync"

	"biblio/internal/book/models"
	"biblio/pkg/platform/sentinel"
)

// InMemory is the process-lifetime book store. Records are held by value
// behind a single RWMutex; every check-then-act sequence (title+author
// dedupe, quantity decrement) runs entirely inside one locked section so
// concurrent lends cannot drive a counter negative.
type InMemory struct {
	mu    sync.RWMutex
	books map[string]models.Book
}

func NewInMemory() *InMemory {
	return &InMemory{books: make(map[string]models.Book)}
}

// List returns copies of all records. Order is not meaningful.
func (s *InMemory) List(_ context.Context) ([]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Book, 0, len(s.books))
	for _, b := range s.books {
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.books[id]; ok {
		return &b, nil
	}
	return nil, sentinel.ErrNotFound
}

// CreateOrIncrement either increments the quantity of an existing record
// matching (title, author) case-insensitively, or inserts a new record under
// id. The scan and the mutation share one critical section so two concurrent
// creates of the same pair cannot both insert.
func (s *InMemory) CreateOrIncrement(_ context.Context, id, title, author string) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, b := range s.books {
		if b.Matches(title, author) {
			b.ApplyIncrement()
			s.books[key] = b
			return &b, nil
		}
	}

	b := *models.New(id, title, author)
	s.books[id] = b
	return &b, nil
}

// Update replaces the descriptive fields only. Quantity and availability are
// preserved; they change solely through lend/return.
func (s *InMemory) Update(_ context.Context, id, title, author string) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	b.Title = title
	b.Author = author
	s.books[id] = b
	return &b, nil
}

func (s *InMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.books, id)
	return nil
}

// Execute runs validate then mutate on the record under the store lock,
// making read-modify-write indivisible. A validate error aborts the
// mutation and leaves the record untouched.
func (s *InMemory) Execute(_ context.Context, id string, validate func(*models.Book) error, mutate func(*models.Book)) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(&b); err != nil {
			return nil, err
		}
	}
	mutate(&b)
	s.books[id] = b
	return &b, nil
}
