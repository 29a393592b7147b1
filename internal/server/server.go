// Package server composes stores, services and handlers into a runnable HTTP
// server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"rubrica/internal/auth/adapters"
	authhandler "rubrica/internal/auth/handler"
	authmetrics "rubrica/internal/auth/metrics"
	authservice "rubrica/internal/auth/service"
	contacthandler "rubrica/internal/contacts/handler"
	contactmetrics "rubrica/internal/contacts/metrics"
	contactservice "rubrica/internal/contacts/service"
	contactstore "rubrica/internal/contacts/store"
	jwttoken "rubrica/internal/jwt_token"
	"rubrica/internal/listing"
	"rubrica/internal/platform/config"
	"rubrica/internal/platform/database"
	"rubrica/internal/platform/health"
	"rubrica/internal/platform/metrics"
	"rubrica/internal/platform/tracer"
	"rubrica/internal/seeder"
	httptransport "rubrica/internal/transport/http"
	userhandler "rubrica/internal/users/handler"
	usermodels "rubrica/internal/users/models"
	userservice "rubrica/internal/users/service"
	userstore "rubrica/internal/users/store"
	"rubrica/pkg/platform/middleware/request"
	"rubrica/pkg/secrets"
)

// Server owns the composed router and the infrastructure behind it.
type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	handler http.Handler
	tokens  *jwttoken.Service

	cleanupFuncs []func() error
}

// userBackend is satisfied by both user stores.
type userBackend interface {
	userservice.Store
	FindByUsername(ctx context.Context, username string) (*usermodels.User, error)
}

// New wires the application for cfg. With the memory store the demo data is
// seeded; with Postgres the pool is opened, optionally migrated, and a default
// admin is created outside production.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	s := &Server{cfg: cfg, logger: logger}

	tokens, err := jwttoken.NewService(cfg.Auth.JWTSigningKey, jwttoken.WithDefaultTTL(cfg.TokenTTL()))
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	s.tokens = tokens

	reg := metrics.New()
	hasher := secrets.NewHasher(cfg.Auth.BcryptCost)
	healthHandler := health.New(cfg.Env, health.WithLogger(logger))

	var (
		contacts contactservice.Store
		users    userBackend
	)
	switch cfg.Store {
	case config.StoreMemory:
		contacts = contactstore.NewInMemory()
		mem := userstore.NewInMemory()
		users = mem
		if err := seeder.New(mem, contacts, hasher, logger).SeedAll(ctx); err != nil {
			return nil, err
		}
	default:
		pool, err := s.openPool(ctx, reg)
		if err != nil {
			s.Close()
			return nil, err
		}
		healthHandler.RegisterCheck("database", pool.Health)
		contacts = contactstore.NewPostgres(pool)
		users = userstore.NewPostgres(pool)
		if !cfg.IsProduction() {
			if err := seeder.New(users, contacts, hasher, logger).EnsureAdmin(ctx); err != nil {
				s.Close()
				return nil, err
			}
		}
	}

	tr := tracer.NewOTel()
	lister := listing.New(
		listing.WithTracer(tr),
		listing.WithMetrics(listing.NewMetrics(reg.Registerer())),
	)
	authMetrics := authmetrics.New(reg.Registerer())

	authSvc := authservice.New(adapters.NewUserCredentialStore(users), hasher, tokens,
		authservice.WithLogger(logger),
		authservice.WithMetrics(authMetrics),
		authservice.WithTracer(tr),
		authservice.WithTokenTTL(cfg.TokenTTL()),
	)
	contactSvc := contactservice.New(contacts,
		contactservice.WithLogger(logger),
		contactservice.WithLister(lister),
		contactservice.WithMetrics(contactmetrics.New(reg.Registerer())),
	)
	userSvc := userservice.New(users, hasher,
		userservice.WithLogger(logger),
		userservice.WithLister(lister),
	)

	s.handler = httptransport.NewRouter(httptransport.Dependencies{
		Logger:            logger,
		CORSOrigins:       cfg.Server.CORSOrigins,
		RequestTimeout:    cfg.RequestTimeout(),
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		Verifier:          jwttoken.NewServiceAdapter(tokens),
		RejectionObserver: authMetrics,
		RequestMetrics:    request.NewMetrics(reg.Registerer()),
		Auth:              authhandler.New(authSvc, logger),
		Contacts:          contacthandler.New(contactSvc, logger),
		Users:             userhandler.New(userSvc, logger),
		Health:            healthHandler,
		Metrics:           reg.Handler(),
	})

	return s, nil
}

func (s *Server) openPool(ctx context.Context, reg *metrics.Registry) (*database.Pool, error) {
	dbCfg := database.Config{
		URL:             s.cfg.Database.DSN(),
		MaxOpenConns:    s.cfg.Database.MaxOpenConns,
		MaxIdleConns:    s.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: s.cfg.ConnMaxLifetime(),
	}
	pool, err := database.New(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.addCleanup(func() error {
		s.logger.Info("closing database pool")
		return pool.Close()
	})

	if err := reg.RegisterDBStats(pool.DB(), "rubrica"); err != nil {
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	if s.cfg.Database.AutoMigrate {
		applied, err := pool.Migrate(ctx)
		if err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		s.logger.Info("database migrations applied", "versions", applied)
	}
	return pool, nil
}

// Handler returns the composed router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Tokens exposes the token service so tests and tools can mint tokens.
func (s *Server) Tokens() *jwttoken.Service {
	return s.tokens
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting http server", "addr", srv.Addr, "store", s.cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) addCleanup(fn func() error) {
	s.cleanupFuncs = append(s.cleanupFuncs, fn)
}

// Close releases infrastructure in reverse order of acquisition.
func (s *Server) Close() {
	for i := len(s.cleanupFuncs) - 1; i >= 0; i-- {
		if err := s.cleanupFuncs[i](); err != nil {
			s.logger.Error("cleanup failed", "error", err)
		}
	}
	s.cleanupFuncs = nil
}
