// AngelaMos | 2026
// handler.go

package property

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/turisgal/backend/internal/core"
	"github.com/turisgal/backend/internal/middleware"
)

const resourceName = "property"

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts /properties. Reads are public; stats and export
// are admin only; writes need an ADMIN or OWNER token and the service
// enforces ownership.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	managers := middleware.RequireRole(core.RoleAdmin, core.RoleOwner)

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticator, adminOnly)
			r.Get("/stats/overview", h.Stats)
			r.Get("/export/csv", h.Export)
		})

		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator, managers)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := ParseFilter(q)
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	params := ListParams{Filter: filter, PageParams: core.ParsePage(q)}

	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, ListResponse{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		Properties: ToItemResponseList(items),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req CreatePropertyRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Created(w, MutationResponse{
		Message:  "property created",
		Property: ToItemResponse(item),
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req UpdatePropertyRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.service.Update(r.Context(), identity, chi.URLParam(r, "id"), req)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, MutationResponse{
		Message:  "property updated",
		Property: ToItemResponse(item),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	if err := h.service.Delete(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Message(w, "property deleted")
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	rows, err := h.service.Export(r.Context(), filter)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	if err := core.CSV(w, exportFilename, exportHeader, exportRecords(rows)); err != nil {
		core.LoggerFromContext(r.Context()).Error("write properties csv", "error", err)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := core.DecodeJSON(w, r, dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}
