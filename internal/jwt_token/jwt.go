package jwttoken

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "rubrica/pkg/domain-errors"
	"rubrica/pkg/requestcontext"
)

const (
	// DefaultIssuer is stamped into every token and required on verification.
	DefaultIssuer = "rubrica"
	// DefaultTTL is the session lifetime used when callers pass ttl <= 0.
	DefaultTTL = 2 * time.Hour
)

var errEmptyKey = errors.New("jwt signing key must not be empty")

// Claims is the session payload carried by a token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	RoleID   int64  `json:"role_id"`
}

type sessionClaims struct {
	Claims
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 session tokens.
type Service struct {
	signingKey []byte
	issuer     string
	defaultTTL time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIssuer overrides DefaultIssuer.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		if issuer != "" {
			s.issuer = issuer
		}
	}
}

// WithDefaultTTL overrides DefaultTTL.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.defaultTTL = ttl
		}
	}
}

// WithClock sets the fallback clock used when the context carries no pinned time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service signing with key. The key is required.
func NewService(signingKey string, opts ...Option) (*Service, error) {
	if signingKey == "" {
		return nil, errEmptyKey
	}
	s := &Service{
		signingKey: []byte(signingKey),
		issuer:     DefaultIssuer,
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DefaultTTL returns the lifetime used when Issue is called with ttl <= 0.
func (s *Service) DefaultTTL() time.Duration {
	return s.defaultTTL
}

func (s *Service) clock(ctx context.Context) time.Time {
	if ctx != nil {
		if t, ok := requestcontext.PinnedTime(ctx); ok {
			return t
		}
	}
	return s.now()
}

// Issue signs claims with iat = now and exp = now + ttl.
func (s *Service) Issue(ctx context.Context, claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := s.clock(ctx)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    s.issuer,
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// Verify checks the signature, algorithm, issuer and expiry of token and
// returns the claims it was issued with. Every failure is reported as
// invalid_token; the wrapped error keeps the cause for logging.
func (s *Service) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeInvalidToken, "empty token")
	}

	parsed := new(sessionClaims)
	_, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.clock(ctx) }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidToken, "token expired")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidToken, "invalid token")
	}

	claims := parsed.Claims
	return &claims, nil
}
