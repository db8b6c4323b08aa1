package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"biblio/internal/book/models"
	"biblio/internal/platform/metrics"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/sentinel"
)

// BookStore is the persistence contract of the registry. The in-memory
// implementation lives in internal/book/store.
type BookStore interface {
	List(ctx context.Context) ([]*models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	CreateOrIncrement(ctx context.Context, id, title, author string) (*models.Book, error)
	Update(ctx context.Context, id, title, author string) (*models.Book, error)
	Delete(ctx context.Context, id string) error
	Execute(ctx context.Context, id string, validate func(*models.Book) error, mutate func(*models.Book)) (*models.Book, error)
}

// Service is the Book Registry: it owns book records and copy-quantity
// accounting.
type Service struct {
	books   BookStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the registry service.
func New(books BookStore, opts ...Option) *Service {
	s := &Service{books: books}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	return s.books.List(ctx)
}

func (s *Service) GetBook(ctx context.Context, id string) (*models.Book, error) {
	b, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, wrapBookErr(err, id)
	}
	return b, nil
}

// CreateBook registers a copy of (title, author). A case-insensitive match
// against an existing record increments its quantity instead of minting a
// new ID.
func (s *Service) CreateBook(ctx context.Context, title, author string) (*models.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	b, err := s.books.CreateOrIncrement(ctx, uuid.NewString(), title, author)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create book")
	}

	s.logInfo(ctx, "book created", "book_id", b.ID, "quantity", b.Quantity)
	if s.metrics != nil {
		s.metrics.BooksCreated.Inc()
	}
	return b, nil
}

// UpdateBook replaces title and author. Quantity and availability are
// preserved; only descriptive fields are editable here.
func (s *Service) UpdateBook(ctx context.Context, id, title, author string) (*models.Book, error) {
	b, err := s.books.Update(ctx, strings.TrimSpace(id), strings.TrimSpace(title), strings.TrimSpace(author))
	if err != nil {
		return nil, wrapBookErr(err, id)
	}
	s.logInfo(ctx, "book updated", "book_id", b.ID)
	return b, nil
}

// DeleteBook removes the record unconditionally. Outstanding lendings keep
// their now-dangling book ID; the lending history is an audit log, not a
// foreign-key constraint.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return wrapBookErr(err, id)
	}
	s.logInfo(ctx, "book deleted", "book_id", id)
	return nil
}

// DecreaseQuantity removes one copy from custody. The zero-quantity check
// re-runs inside the store's critical section, so of two racing lends at
// quantity 1 exactly one succeeds and the other fails cleanly.
func (s *Service) DecreaseQuantity(ctx context.Context, id string) (*models.Book, error) {
	b, err := s.books.Execute(ctx, id,
		func(b *models.Book) error { return b.CanDecrement() },
		func(b *models.Book) { b.ApplyDecrement() },
	)
	if err != nil {
		return nil, wrapBookErr(err, id)
	}
	return b, nil
}

// IncreaseQuantity returns one copy to custody and forces availability true.
func (s *Service) IncreaseQuantity(ctx context.Context, id string) (*models.Book, error) {
	b, err := s.books.Execute(ctx, id,
		nil,
		func(b *models.Book) { b.ApplyIncrement() },
	)
	if err != nil {
		return nil, wrapBookErr(err, id)
	}
	return b, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

// wrapBookErr translates store sentinels into coded domain errors and passes
// already-coded errors through untouched.
func wrapBookErr(err error, id string) error {
	var de *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "book not found with ID: "+id)
	case errors.As(err, &de):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "book registry failure")
	}
}
