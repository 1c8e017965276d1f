package vehicletypes

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
	"github.com/garage-admin/garage/internal/shared"
)

// Handler exposes vehicle type endpoints. The resource is thin enough that the
// handler talks to the repository directly.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	validator *validator.Validate
	paging    httpx.Paging
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, repo Repository, paging httpx.Paging) *Handler {
	return &Handler{logger: logger, repo: repo, validator: httpx.NewValidator(), paging: paging}
}

// MountRoutes registers the type routes.
func (h *Handler) MountRoutes(r chi.Router, authz rbac.Middleware) {
	r.Route("/types", func(r chi.Router) {
		r = r.With(authz.Require("types", rbac.DeleteOnlyByAdmin))
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.retrieve)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.partialUpdate)
		r.Delete("/{id}", h.destroy)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params, err := h.paging.Params(r, Listing)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	items, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		httpx.Fail(w, h.logger, "list types", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewPage(r, params, total, items))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req TypeRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.repo.Create(r.Context(), strings.TrimSpace(*req.Name))
	if err != nil {
		httpx.Fail(w, h.logger, "create type", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	t, err := h.repo.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "get type", err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req TypeRequest
	h.write(w, r, &req, func() *string { return req.Name })
}

func (h *Handler) partialUpdate(w http.ResponseWriter, r *http.Request) {
	var req PatchTypeRequest
	h.write(w, r, &req, func() *string { return req.Name })
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, req any, name func() *string) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	current, err := h.repo.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "get type", err)
		return
	}
	if err := h.decode(r, req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if n := name(); n != nil {
		current.Name = strings.TrimSpace(*n)
	}
	updated, err := h.repo.Update(r.Context(), current)
	if err != nil {
		httpx.Fail(w, h.logger, "update type", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, h.logger, "delete type", err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) decode(r *http.Request, target any) error {
	if err := httpx.DecodeJSON(r, target); err != nil {
		return err
	}
	return httpx.Validate(h.validator, target)
}
