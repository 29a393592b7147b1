package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "rubrica/pkg/domain-errors"
	"rubrica/pkg/platform/httputil"
	"rubrica/pkg/requestcontext"
)

// TokenVerifier verifies a raw bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// Claims are the verified token claims the middleware attaches to the context.
type Claims struct {
	UserID   int64
	Username string
	RoleID   int64
}

// RejectionObserver is notified with the error code of every rejected request.
type RejectionObserver interface {
	IncTokenRejected(code string)
}

type options struct {
	observer RejectionObserver
}

// Option configures RequireAuth.
type Option func(*options)

// WithRejectionObserver reports rejected requests, typically to a metrics collector.
func WithRejectionObserver(o RejectionObserver) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// RequireAuth returns middleware that verifies the bearer token and stores the
// caller in the request context.
//
// A missing Authorization header is rejected with 403 missing_token. Anything
// else that fails to verify (wrong scheme, bad signature, expired, malformed)
// is rejected with 401 invalid_token; the cause is only logged.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger, opts ...Option) func(http.Handler) http.Handler {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	reject := func(w http.ResponseWriter, code dErrors.Code, msg string) {
		if cfg.observer != nil {
			cfg.observer.IncTokenRejected(string(code))
		}
		httputil.WriteError(w, dErrors.New(code, msg))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				reject(w, dErrors.CodeMissingToken, "no token provided")
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - malformed authorization header",
					"request_id", requestID,
				)
				reject(w, dErrors.CodeInvalidToken, "invalid token")
				return
			}

			claims, err := verifier.VerifyToken(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				reject(w, dErrors.CodeInvalidToken, "invalid token")
				return
			}

			ctx = requestcontext.WithPrincipal(ctx, requestcontext.Principal{
				UserID:   claims.UserID,
				Username: claims.Username,
				RoleID:   claims.RoleID,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
