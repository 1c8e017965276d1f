package services

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
	"github.com/garage-admin/garage/internal/shared"
)

// Handler exposes repair record endpoints. Reads return the nested Detail,
// writes the flat Service.
type Handler struct {
	logger    *slog.Logger
	manager   *ServiceManager
	validator *validator.Validate
	paging    httpx.Paging
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, manager *ServiceManager, paging httpx.Paging) *Handler {
	return &Handler{logger: logger, manager: manager, validator: httpx.NewValidator(), paging: paging}
}

// MountRoutes registers the service record routes.
func (h *Handler) MountRoutes(r chi.Router, authz rbac.Middleware) {
	r.Route("/services", func(r chi.Router) {
		r = r.With(authz.Require("services", rbac.DeleteOnlyByAdmin))
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
	items, total, err := h.manager.List(r.Context(), params)
	if err != nil {
		httpx.Fail(w, h.logger, "list services", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewPage(r, params, total, items))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.manager.Create(r.Context(), req.Changes())
	if err != nil {
		httpx.Fail(w, h.logger, "create service", err)
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
	d, err := h.manager.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "get service", err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	h.write(w, r, &req, func() Changes { return req.Changes() })
}

func (h *Handler) partialUpdate(w http.ResponseWriter, r *http.Request) {
	var req PatchServiceRequest
	h.write(w, r, &req, func() Changes { return req.Changes() })
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, req any, changes func() Changes) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if _, err := h.manager.Get(r.Context(), id); err != nil {
		httpx.Fail(w, h.logger, "get service", err)
		return
	}
	if err := h.decode(r, req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.manager.Update(r.Context(), id, changes())
	if err != nil {
		httpx.Fail(w, h.logger, "update service", err)
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
	if err := h.manager.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, h.logger, "delete service", err)
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
