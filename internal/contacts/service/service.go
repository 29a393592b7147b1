package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	contactmetrics "rubrica/internal/contacts/metrics"
	"rubrica/internal/contacts/models"
	"rubrica/internal/listing"
	dErrors "rubrica/pkg/domain-errors"
	"rubrica/pkg/platform/sentinel"
	"rubrica/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Store persists contacts. It doubles as the listing source.
type Store interface {
	Fetch(ctx context.Context, w listing.Window) ([]models.Contact, int64, error)
	Create(ctx context.Context, fields models.ContactFields) (*models.Contact, error)
	Update(ctx context.Context, id int64, fields models.ContactFields) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements contact CRUD and listing.
type Service struct {
	store   Store
	lister  *listing.Lister
	logger  *slog.Logger
	metrics *contactmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithLister(l *listing.Lister) Option {
	return func(s *Service) {
		s.lister = l
	}
}

func WithMetrics(m *contactmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of contacts. Query parameters are validated before
// the store is touched.
func (s *Service) List(ctx context.Context, raw url.Values) (*listing.Page[models.Contact], error) {
	return listing.List[models.Contact](ctx, s.lister, raw, models.SortSchema, s.store)
}

func (s *Service) Create(ctx context.Context, fields models.ContactFields) (*models.Contact, error) {
	c, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contact")
	}
	s.logInfo(ctx, "contact created", "contact_id", c.ID)
	s.incWrite("create")
	return c, nil
}

// Update replaces all fields of the contact with the given id.
func (s *Service) Update(ctx context.Context, id int64, fields models.ContactFields) (*models.Contact, error) {
	c, err := s.store.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update contact")
	}
	s.logInfo(ctx, "contact updated", "contact_id", id)
	s.incWrite("update")
	return c, nil
}

// Delete removes the contact. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contact")
	}
	s.logInfo(ctx, "contact deleted", "contact_id", id)
	s.incWrite("delete")
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	args = append(args, "request_id", requestcontext.RequestID(ctx))
	if p, ok := requestcontext.GetPrincipal(ctx); ok {
		args = append(args, "user_id", p.UserID)
	}
	s.logger.InfoContext(ctx, msg, args...)
}

func (s *Service) incWrite(op string) {
	if s.metrics != nil {
		s.metrics.IncWrite(op)
	}
}
