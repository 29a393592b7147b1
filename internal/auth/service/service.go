package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	authmetrics "rubrica/internal/auth/metrics"
	"rubrica/internal/auth/models"
	jwttoken "rubrica/internal/jwt_token"
	"rubrica/internal/platform/tracer"
	dErrors "rubrica/pkg/domain-errors"
	"rubrica/pkg/platform/sentinel"
	"rubrica/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks CredentialStore PasswordVerifier TokenIssuer

// CredentialStore resolves a username to its stored principal. Unknown
// usernames return sentinel.ErrNotFound.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Principal, error)
}

type PasswordVerifier interface {
	Verify(secret, hash string) error
	VerifyDummy(secret string)
}

type TokenIssuer interface {
	Issue(ctx context.Context, claims jwttoken.Claims, ttl time.Duration) (string, error)
}

// errInvalidCredentials is returned for both unknown users and wrong
// passwords so the response does not reveal which one failed.
var errInvalidCredentials = dErrors.New(dErrors.CodeInvalidCredentials, "invalid credentials")

type Service struct {
	store    CredentialStore
	verifier PasswordVerifier
	issuer   TokenIssuer
	tokenTTL time.Duration
	logger   *slog.Logger
	metrics  *authmetrics.Metrics
	tracer   tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *authmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithTokenTTL overrides the issuer's default lifetime. Zero keeps the default.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.tokenTTL = ttl
	}
}

func New(store CredentialStore, verifier PasswordVerifier, issuer TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		verifier: verifier,
		issuer:   issuer,
		tracer:   tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and issues a session token. The request must
// already be normalized and validated.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (_ *models.LoginResponse, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanLogin)
	outcome := authmetrics.OutcomeError
	defer func() {
		span.SetAttributes(tracer.String(tracer.AttrOutcome, outcome))
		span.End(err)
		s.observe(outcome, time.Since(start))
	}()

	principal, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.verifier.VerifyDummy(req.Password)
			outcome = authmetrics.OutcomeUnknownUser
			s.logWarn(ctx, "login rejected", "reason", outcome)
			return nil, errInvalidCredentials
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if err := s.verifier.Verify(req.Password, principal.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidCredentials) {
			outcome = authmetrics.OutcomeWrongPassword
			s.logWarn(ctx, "login rejected", "reason", outcome, "user_id", principal.ID)
			return nil, errInvalidCredentials
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	token, err := s.issuer.Issue(ctx, jwttoken.Claims{
		UserID:   principal.ID,
		Username: principal.Username,
		RoleID:   principal.RoleID,
	}, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	outcome = authmetrics.OutcomeSuccess
	if s.logger != nil {
		s.logger.InfoContext(ctx, "login succeeded",
			"user_id", principal.ID,
			"role", principal.RoleName,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return &models.LoginResponse{Token: token}, nil
}

func (s *Service) observe(outcome string, d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncLogin(outcome)
	s.metrics.ObserveLoginDuration(d.Seconds())
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	args = append(args, "request_id", requestcontext.RequestID(ctx))
	s.logger.WarnContext(ctx, msg, args...)
}
