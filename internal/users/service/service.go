package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"rubrica/internal/listing"
	"rubrica/internal/users/models"
	dErrors "rubrica/pkg/domain-errors"
	"rubrica/pkg/platform/sentinel"
	"rubrica/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store PasswordHasher

// Store persists users and exposes the role catalogue.
type Store interface {
	Fetch(ctx context.Context, w listing.Window) ([]models.User, int64, error)
	Create(ctx context.Context, fields models.UserFields) (*models.User, error)
	Update(ctx context.Context, id int64, fields models.UserFields) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	ListRoles(ctx context.Context) ([]models.Role, error)
}

type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// CreateInput carries a plaintext password; it is hashed before it reaches the store.
type CreateInput struct {
	Username string
	Password string
	RoleID   int64
}

// UpdateInput is a full replacement except Password, which is changed only
// when non-empty.
type UpdateInput struct {
	Username string
	Password string
	RoleID   int64
}

type Service struct {
	store  Store
	hasher PasswordHasher
	lister *listing.Lister
	logger *slog.Logger
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

func New(store Store, hasher PasswordHasher, opts ...Option) *Service {
	s := &Service{store: store, hasher: hasher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context, raw url.Values) (*listing.Page[models.User], error) {
	return listing.List[models.User](ctx, s.lister, raw, models.SortSchema, s.store)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Create(ctx, models.UserFields{Username: in.Username, PasswordHash: hash, RoleID: in.RoleID})
	if err != nil {
		return nil, translateStoreError(err, "failed to create user")
	}
	s.logInfo(ctx, "user created", "target_user_id", u.ID, "role_id", u.RoleID)
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*models.User, error) {
	fields := models.UserFields{Username: in.Username, RoleID: in.RoleID}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = hash
	}
	u, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, translateStoreError(err, "failed to update user")
	}
	s.logInfo(ctx, "user updated", "target_user_id", id, "password_changed", in.Password != "")
	return u, nil
}

// Delete removes the user. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}
	s.logInfo(ctx, "user deleted", "target_user_id", id)
	return nil
}

func (s *Service) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list roles")
	}
	return roles, nil
}

func translateStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "user not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "username already taken")
	case errors.Is(err, sentinel.ErrInvalidReference):
		return dErrors.New(dErrors.CodeBadRequest, "unknown role")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
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
