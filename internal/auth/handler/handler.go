package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rubrica/internal/auth/models"
	dErrors "rubrica/pkg/domain-errors"
	"rubrica/pkg/platform/httputil"
	"rubrica/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Service interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// Handler serves login and the caller's identity.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the public route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.HandleLogin)
}

// RegisterProtected mounts routes that expect the auth gate in front of them.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/me", h.HandleMe)
}

// HandleLogin implements POST /login.
//
// Input: { "username": "admin", "password": "admin" }
// Output: { "token": "<jwt>" }
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.auth.Login(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidCredentials) {
			h.logger.WarnContext(ctx, "login failed", "request_id", requestID)
		} else {
			h.logger.ErrorContext(ctx, "login failed", "error", err, "request_id", requestID)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := requestcontext.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidToken, "invalid token"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.MeResponse{
		UserID:   p.UserID,
		Username: p.Username,
		RoleID:   p.RoleID,
	})
}
