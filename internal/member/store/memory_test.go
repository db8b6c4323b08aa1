package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"biblio/internal/member/models"
	"biblio/pkg/platform/sentinel"
)

type MemberStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemberStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemberStoreSuite(t *testing.T) {
	suite.Run(t, new(MemberStoreSuite))
}

func (s *MemberStoreSuite) newMember(name, email string) *models.Member {
	return models.New(uuid.NewString(), name, email)
}

// TestCreationAndLookups verifies the store creates and retrieves members.
func (s *MemberStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds member by ID", func() {
		m := s.newMember("Ada", "ada@example.com")
		s.Require().NoError(s.store.CreateIfEmailAvailable(s.ctx, m))

		found, err := s.store.FindByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal("Ada", found.Name)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, uuid.NewString())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestEmailUniqueness verifies case-insensitive email uniqueness.
func (s *MemberStoreSuite) TestEmailUniqueness() {
	s.Run("rejects duplicate email", func() {
		s.Require().NoError(s.store.CreateIfEmailAvailable(s.ctx, s.newMember("A", "a@x.com")))

		err := s.store.CreateIfEmailAvailable(s.ctx, s.newMember("B", "a@x.com"))
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 1)
	})

	s.Run("enforces case-insensitive uniqueness", func() {
		s.Require().NoError(s.store.CreateIfEmailAvailable(s.ctx, s.newMember("A", "ada@example.com")))

		err := s.store.CreateIfEmailAvailable(s.ctx, s.newMember("B", "ADA@EXAMPLE.COM"))
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})
}

// TestUpdates verifies conflict rules on update.
func (s *MemberStoreSuite) TestUpdates() {
	s.Run("updating to own unchanged email succeeds", func() {
		m := s.newMember("Ada", "ada@example.com")
		s.Require().NoError(s.store.CreateIfEmailAvailable(s.ctx, m))

		updated, err := s.store.UpdateIfEmailAvailable(s.ctx, m.ID, "Ada L.", "ada@example.com")
		s.Require().NoError(err)
		s.Equal("Ada L.", updated.Name)
	})

	s.Run("updating to another member's email fails", func() {
		a := s.newMember("A", "a@x.com")
		b := s.newMember("B", "b@x.com")
		s.Require().NoError(s.store.CreateIfEmailAvailable(s.ctx, a))
		s.Require().NoError(s.store.CreateIfEmailAvailable(s.ctx, b))

		_, err := s.store.UpdateIfEmailAvailable(s.ctx, b.ID, "B", "A@X.com")
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.UpdateIfEmailAvailable(s.ctx, uuid.NewString(), "X", "x@x.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestDelete verifies removal semantics.
func (s *MemberStoreSuite) TestDelete() {
	m := s.newMember("Ada", "ada@example.com")
	s.Require().NoError(s.store.CreateIfEmailAvailable(s.ctx, m))
	s.Require().NoError(s.store.Delete(s.ctx, m.ID))
	s.ErrorIs(s.store.Delete(s.ctx, m.ID), sentinel.ErrNotFound)
}

// TestConcurrentCreate races registrations of the same address and expects
// a single insert.
func (s *MemberStoreSuite) TestConcurrentCreate() {
	const workers = 16
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.CreateIfEmailAvailable(s.ctx, s.newMember("Ada", "ada@example.com")); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	s.Len(successes, 1, "exactly one racing create may win")
}
