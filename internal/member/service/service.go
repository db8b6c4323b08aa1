package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"biblio/internal/member/models"
	"biblio/internal/platform/metrics"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/sentinel"
)

// MemberStore is the persistence contract of the registry.
type MemberStore interface {
	List(ctx context.Context) ([]*models.Member, error)
	FindByID(ctx context.Context, id string) (*models.Member, error)
	CreateIfEmailAvailable(ctx context.Context, m *models.Member) error
	UpdateIfEmailAvailable(ctx context.Context, id, name, email string) (*models.Member, error)
	Delete(ctx context.Context, id string) error
}

// Service is the Member Registry.
type Service struct {
	members MemberStore
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

func New(members MemberStore, opts ...Option) *Service {
	s := &Service{members: members}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListMembers(ctx context.Context) ([]*models.Member, error) {
	return s.members.List(ctx)
}

func (s *Service) GetMember(ctx context.Context, id string) (*models.Member, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, wrapMemberErr(err, id)
	}
	return m, nil
}

func (s *Service) CreateMember(ctx context.Context, name, email string) (*models.Member, error) {
	m := models.New(uuid.NewString(), strings.TrimSpace(name), strings.TrimSpace(email))

	if err := s.members.CreateIfEmailAvailable(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already exists: "+m.Email)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create member")
	}

	s.logInfo(ctx, "member created", "member_id", m.ID)
	if s.metrics != nil {
		s.metrics.MembersCreated.Inc()
	}
	return m, nil
}

// UpdateMember replaces name and email in place. Updating a member to its
// own unchanged email succeeds; colliding with a different member fails.
func (s *Service) UpdateMember(ctx context.Context, id, name, email string) (*models.Member, error) {
	email = strings.TrimSpace(email)
	m, err := s.members.UpdateIfEmailAvailable(ctx, id, strings.TrimSpace(name), email)
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already exists: "+email)
		}
		return nil, wrapMemberErr(err, id)
	}
	s.logInfo(ctx, "member updated", "member_id", id)
	return m, nil
}

func (s *Service) DeleteMember(ctx context.Context, id string) error {
	if err := s.members.Delete(ctx, id); err != nil {
		return wrapMemberErr(err, id)
	}
	s.logInfo(ctx, "member deleted", "member_id", id)
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

func wrapMemberErr(err error, id string) error {
	var de *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "member not found with ID: "+id)
	case errors.As(err, &de):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "member registry failure")
	}
}
