package vehicles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/garage-admin/garage/internal/platform/httpx"
	"github.com/garage-admin/garage/internal/rbac"
	"github.com/garage-admin/garage/internal/shared"
)

// Handler exposes vehicle endpoints. Reads return the nested Detail, writes
// the flat Vehicle.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	paging    httpx.Paging
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, paging httpx.Paging) *Handler {
	return &Handler{logger: logger, service: service, validator: httpx.NewValidator(), paging: paging}
}

// MountRoutes registers the vehicle routes.
func (h *Handler) MountRoutes(r chi.Router, authz rbac.Middleware) {
	r.Route("/vehicles", func(r chi.Router) {
		r = r.With(authz.Require("vehicles", rbac.DeleteOnlyByAdmin))
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
	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.Fail(w, h.logger, "list vehicles", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewPage(r, params, total, items))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req VehicleRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), req.Changes())
	if err != nil {
		httpx.Fail(w, h.logger, "create vehicle", err)
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
	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "get vehicle", err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req VehicleRequest
	h.write(w, r, &req, func() Changes { return req.Changes() })
}

func (h *Handler) partialUpdate(w http.ResponseWriter, r *http.Request) {
	var req PatchVehicleRequest
	h.write(w, r, &req, func() Changes { return req.Changes() })
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, req any, changes func() Changes) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if _, err := h.service.Get(r.Context(), id); err != nil {
		httpx.Fail(w, h.logger, "get vehicle", err)
		return
	}
	if err := h.decode(r, req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, changes())
	if err != nil {
		httpx.Fail(w, h.logger, "update vehicle", err)
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
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, h.logger, "delete vehicle", err)
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
