package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	authhandler "rubrica/internal/auth/handler"
	contacthandler "rubrica/internal/contacts/handler"
	"rubrica/internal/platform/health"
	userhandler "rubrica/internal/users/handler"
	authmw "rubrica/pkg/platform/middleware/auth"
	"rubrica/pkg/platform/middleware/request"
)

// Dependencies are the handlers and middleware inputs the router composes.
// Nil feature handlers are skipped.
type Dependencies struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	Verifier          authmw.TokenVerifier
	RejectionObserver authmw.RejectionObserver
	RequestMetrics    *request.Metrics

	Auth     *authhandler.Handler
	Contacts *contacthandler.Handler
	Users    *userhandler.Handler
	Health   *health.Handler
	Metrics  http.Handler
}

// NewRouter wires all public endpoints with middleware. Everything under /api
// except /api/login sits behind the auth gate.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(request.LatencyMiddleware(d.RequestMetrics))
	if d.RequestTimeout > 0 {
		r.Use(request.Timeout(d.RequestTimeout))
	}
	if d.MaxBodyBytes > 0 {
		r.Use(request.BodyLimit(d.MaxBodyBytes))
	}
	r.Use(request.ContentTypeJSON)

	if d.Health != nil {
		d.Health.Register(r)
	}
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	var gateOpts []authmw.Option
	if d.RejectionObserver != nil {
		gateOpts = append(gateOpts, authmw.WithRejectionObserver(d.RejectionObserver))
	}

	r.Route("/api", func(r chi.Router) {
		if d.Auth != nil {
			d.Auth.Register(r)
		}

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(d.Verifier, d.Logger, gateOpts...))

			if d.Auth != nil {
				d.Auth.RegisterProtected(r)
			}
			if d.Contacts != nil {
				r.Route("/contacts", d.Contacts.Register)
				// Legacy listing path of the original web client. Writes through it
				// take the same English field names as /contacts.
				r.Route("/rubrica", d.Contacts.Register)
			}
			if d.Users != nil {
				d.Users.Register(r)
			}
		})
	})

	return r
}
