package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	bookmodels "biblio/internal/book/models"
	"biblio/internal/lending/models"
	membermodels "biblio/internal/member/models"
	"biblio/internal/platform/metrics"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/sentinel"
)

// BookRegistry is the narrow slice of the book service the engine consumes.
// The engine never mutates books except through these operations.
type BookRegistry interface {
	GetBook(ctx context.Context, id string) (*bookmodels.Book, error)
	DecreaseQuantity(ctx context.Context, id string) (*bookmodels.Book, error)
	IncreaseQuantity(ctx context.Context, id string) (*bookmodels.Book, error)
}

// MemberRegistry is the narrow slice of the member service the engine consumes.
type MemberRegistry interface {
	GetMember(ctx context.Context, id string) (*membermodels.Member, error)
}

// LendingStore is the persistence contract for lending records.
type LendingStore interface {
	Create(ctx context.Context, l *models.Lending) error
	FindByID(ctx context.Context, id string) (*models.Lending, error)
	List(ctx context.Context) ([]*models.Lending, error)
	Delete(ctx context.Context, id string) error
	Execute(ctx context.Context, id string, validate func(*models.Lending) error, mutate func(*models.Lending)) (*models.Lending, error)
}

// Service is the lending engine: it orchestrates lend/return, cross-checks
// the registries, and owns the lending records and their timestamps.
type Service struct {
	lendings LendingStore
	books    BookRegistry
	members  MemberRegistry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(lendings LendingStore, books BookRegistry, members MemberRegistry, opts ...Option) *Service {
	s := &Service{
		lendings: lendings,
		books:    books,
		members:  members,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lend hands one copy of a book to a member.
//
// Availability is checked before member existence, so when both are invalid
// the book error surfaces. The availability check here is only a fast
// rejection; the authoritative zero-check runs atomically inside
// DecreaseQuantity, and losing that race after the record was stored rolls
// the record back and surfaces an internal error.
func (s *Service) Lend(ctx context.Context, bookID, memberID string) (*models.Lending, error) {
	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.Available {
		if s.metrics != nil {
			s.metrics.LendingRejected.Inc()
		}
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "book is not available for lending: "+bookID)
	}

	if _, err := s.members.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	l := models.New(uuid.NewString(), bookID, memberID, s.now().Format(models.TimeLayout))
	if err := s.lendings.Create(ctx, l); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record lending")
	}

	if _, err := s.books.DecreaseQuantity(ctx, bookID); err != nil {
		// Lost the availability race between the check above and the
		// decrement. Remove the record again: no lending exists without
		// a decremented copy.
		_ = s.lendings.Delete(ctx, l.ID)
		if s.metrics != nil {
			s.metrics.LendingRejected.Inc()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "book "+bookID+" became unavailable while lending")
	}

	s.logInfo(ctx, "book lent", "lending_id", l.ID, "book_id", bookID, "member_id", memberID)
	if s.metrics != nil {
		s.metrics.BooksLent.Inc()
	}
	return l, nil
}

// Return transitions a loan to its terminal state and releases the copy.
// Returning an already-returned loan is an idempotent no-op: the stored
// record comes back unchanged and the quantity is not incremented again.
func (s *Service) Return(ctx context.Context, lendingID string) (*models.Lending, error) {
	returnedAt := s.now().Format(models.TimeLayout)

	l, err := s.lendings.Execute(ctx, lendingID,
		func(l *models.Lending) error {
			if l.Returned() {
				return sentinel.ErrInvalidState
			}
			return nil
		},
		func(l *models.Lending) {
			l.ReturnedAt = &returnedAt
		},
	)
	if errors.Is(err, sentinel.ErrInvalidState) {
		// Already returned; of two racing returns only one passes the
		// validate step, so the increment below runs at most once.
		return s.GetLending(ctx, lendingID)
	}
	if err != nil {
		return nil, wrapLendingErr(err, lendingID)
	}

	if _, err := s.books.IncreaseQuantity(ctx, l.BookID); err != nil {
		// The book may have been deleted while on loan; the return itself
		// still stands.
		s.logWarn(ctx, "returned copy could not be restocked", "lending_id", lendingID, "book_id", l.BookID, "error", err.Error())
	}

	s.logInfo(ctx, "book returned", "lending_id", l.ID, "book_id", l.BookID)
	if s.metrics != nil {
		s.metrics.BooksReturned.Inc()
	}
	return l, nil
}

func (s *Service) GetLending(ctx context.Context, id string) (*models.Lending, error) {
	l, err := s.lendings.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLendingErr(err, id)
	}
	return l, nil
}

func (s *Service) ListLendings(ctx context.Context) ([]*models.Lending, error) {
	return s.lendings.List(ctx)
}

// History returns the full audit trail. It is deliberately the same view as
// ListLendings; records are never filtered or deleted.
func (s *Service) History(ctx context.Context) ([]*models.Lending, error) {
	return s.lendings.List(ctx)
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}

func wrapLendingErr(err error, id string) error {
	var de *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "lending not found with ID: "+id)
	case errors.As(err, &de):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "lending engine failure")
	}
}
