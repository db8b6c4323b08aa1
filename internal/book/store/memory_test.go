package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"biblio/internal/book/models"
	"biblio/pkg/platform/sentinel"
)

type BookStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *BookStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestBookStoreSuite(t *testing.T) {
	suite.Run(t, new(BookStoreSuite))
}

func (s *BookStoreSuite) create(title, author string) *models.Book {
	b, err := s.store.CreateOrIncrement(s.ctx, uuid.NewString(), title, author)
	s.Require().NoError(err)
	return b
}

// TestCreationAndLookups verifies the store creates and retrieves books.
func (s *BookStoreSuite) TestCreationAndLookups() {
	s.Run("creates a first copy with quantity 1", func() {
		b := s.create("Dune", "Frank Herbert")
		s.Equal(1, b.Quantity)
		s.True(b.Available)

		found, err := s.store.FindByID(s.ctx, b.ID)
		s.Require().NoError(err)
		s.Equal("Dune", found.Title)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, uuid.NewString())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestTitleAuthorDedupe verifies case-insensitive dedupe on (title, author).
func (s *BookStoreSuite) TestTitleAuthorDedupe() {
	s.Run("repeated pair increments the existing record", func() {
		first := s.create("Dune", "Frank Herbert")
		second := s.create("Dune", "Frank Herbert")

		s.Equal(first.ID, second.ID)
		s.Equal(2, second.Quantity)

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 1)
	})

	s.Run("match is case-insensitive on both fields", func() {
		first := s.create("Clean Code", "Robert C. Martin")
		second := s.create("CLEAN CODE", "robert c. martin")

		s.Equal(first.ID, second.ID)
		s.Equal(2, second.Quantity)
	})

	s.Run("different author mints a new record", func() {
		first := s.create("Rewrites", "Alice")
		second := s.create("Rewrites", "Bob")
		s.NotEqual(first.ID, second.ID)
	})
}

// TestUpdates verifies descriptive updates preserve quantity accounting.
func (s *BookStoreSuite) TestUpdates() {
	s.Run("update replaces title and author only", func() {
		b := s.create("Dune", "Frank Herbert")
		s.create("Dune", "Frank Herbert") // quantity -> 2

		updated, err := s.store.Update(s.ctx, b.ID, "Dune Messiah", "Frank Herbert")
		s.Require().NoError(err)
		s.Equal("Dune Messiah", updated.Title)
		s.Equal(2, updated.Quantity)
		s.True(updated.Available)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.Update(s.ctx, uuid.NewString(), "x", "y")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestDelete verifies unconditional removal.
func (s *BookStoreSuite) TestDelete() {
	b := s.create("Dune", "Frank Herbert")
	s.Require().NoError(s.store.Delete(s.ctx, b.ID))

	_, err := s.store.FindByID(s.ctx, b.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(s.ctx, b.ID), sentinel.ErrNotFound)
}

// TestExecute verifies the atomic validate-then-mutate path.
func (s *BookStoreSuite) TestExecute() {
	s.Run("validate failure leaves the record untouched", func() {
		b := s.create("Dune", "Frank Herbert")
		_, err := s.store.Execute(s.ctx, b.ID,
			func(b *models.Book) error { return b.CanDecrement() },
			func(b *models.Book) { b.ApplyDecrement() },
		)
		s.Require().NoError(err)

		// Quantity is now 0; the next decrement must fail and change nothing.
		_, err = s.store.Execute(s.ctx, b.ID,
			func(b *models.Book) error { return b.CanDecrement() },
			func(b *models.Book) { b.ApplyDecrement() },
		)
		s.Require().Error(err)

		found, err := s.store.FindByID(s.ctx, b.ID)
		s.Require().NoError(err)
		s.Equal(0, found.Quantity)
		s.False(found.Available)
	})

	s.Run("availability always mirrors quantity", func() {
		b := s.create("Clean Code", "Robert C. Martin")
		for i := 0; i < 3; i++ {
			updated, err := s.store.Execute(s.ctx, b.ID, nil,
				func(b *models.Book) { b.ApplyIncrement() })
			s.Require().NoError(err)
			s.Equal(updated.Quantity > 0, updated.Available)
		}
	})
}

// TestConcurrentDecrement drives racing decrements at quantity 1 and
// expects exactly one winner.
func (s *BookStoreSuite) TestConcurrentDecrement() {
	b := s.create("Dune", "Frank Herbert")

	const workers = 32
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Execute(s.ctx, b.ID,
				func(b *models.Book) error { return b.CanDecrement() },
				func(b *models.Book) { b.ApplyDecrement() },
			)
			if err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	s.Len(successes, 1, "exactly one racing decrement may win")

	found, err := s.store.FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(0, found.Quantity)
}
