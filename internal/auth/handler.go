package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/garage-admin/garage/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the token flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	events    EventRecorder
}

// EventRecorder counts token endpoint outcomes.
type EventRecorder interface {
	TokenEvent(operation, outcome string)
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: httpx.NewValidator(),
	}
}

// WithEvents makes the handler report outcomes to rec.
func (h *Handler) WithEvents(rec EventRecorder) *Handler {
	h.events = rec
	return h
}

// MountRoutes registers the token routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/token", h.obtain)
	r.Post("/token/refresh", h.refresh)
	r.Post("/token/blacklist", h.blacklist)
}

type obtainRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type accessResponse struct {
	Access string `json:"access"`
}

func (h *Handler) obtain(w http.ResponseWriter, r *http.Request) {
	var req obtainRequest
	if !h.decode(w, r, &req) {
		return
	}
	pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	h.record("obtain", err)
	if err != nil {
		httpx.Fail(w, h.logger, "token obtain", err)
		return
	}
	httpx.JSON(w, http.StatusOK, pair)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decode(w, r, &req) {
		return
	}
	access, err := h.service.Refresh(r.Context(), req.Refresh)
	h.record("refresh", err)
	if err != nil {
		httpx.Fail(w, h.logger, "token refresh", err)
		return
	}
	httpx.JSON(w, http.StatusOK, accessResponse{Access: access})
}

func (h *Handler) blacklist(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.service.Revoke(r.Context(), req.Refresh)
	h.record("blacklist", err)
	if err != nil {
		httpx.Fail(w, h.logger, "token blacklist", err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.RespondError(w, err)
		return false
	}
	if err := httpx.Validate(h.validator, target); err != nil {
		httpx.RespondError(w, err)
		return false
	}
	return true
}

func (h *Handler) record(operation string, err error) {
	if h.events == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	h.events.TokenEvent(operation, outcome)
}
