package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"rubrica/internal/contacts/models"
	"rubrica/internal/listing"
	"rubrica/pkg/platform/httputil"
	"rubrica/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the contact operations used by the handler.
type Service interface {
	List(ctx context.Context, raw url.Values) (*listing.Page[models.Contact], error)
	Create(ctx context.Context, fields models.ContactFields) (*models.Contact, error)
	Update(ctx context.Context, id int64, fields models.ContactFields) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the collection routes relative to r; the caller picks the
// prefix (/contacts and the legacy /rubrica).
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
}

// HandleList returns {data, total} for the requested page.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	page, err := h.service.List(ctx, r.URL.Query())
	if err != nil {
		h.logger.ErrorContext(ctx, "list contacts failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ContactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	contact, err := h.service.Create(ctx, req.ToFields())
	if err != nil {
		h.logger.ErrorContext(ctx, "create contact failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, contact)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contactID, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ContactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	contact, err := h.service.Update(ctx, contactID, req.ToFields())
	if err != nil {
		h.logger.ErrorContext(ctx, "update contact failed", "error", err, "request_id", requestID, "contact_id", contactID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, contact)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contactID, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, contactID); err != nil {
		h.logger.ErrorContext(ctx, "delete contact failed", "error", err, "request_id", requestID, "contact_id", contactID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}
