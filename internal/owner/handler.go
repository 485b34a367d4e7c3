// AngelaMos | 2026
// handler.go

package owner

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/turisgal/backend/internal/core"
)

const resourceName = "property owner"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/property-owners", func(r chi.Router) {
		r.Use(authenticator, adminOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/export", h.Export)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
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

	core.OK(w, OwnerListResponse{
		Page:   params.Page,
		Limit:  params.Limit,
		Total:  total,
		Owners: toListItems(items),
	})
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
		core.LoggerFromContext(r.Context()).Error("write owners csv", "error", err)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, toDetailResponse(detail))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOwnerRequest
	if !h.decode(w, r, &req) {
		return
	}

	owner, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Created(w, toMutationResponse("property owner created", owner, 0))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOwnerRequest
	if !h.decode(w, r, &req) {
		return
	}

	owner, properties, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, toMutationResponse("property owner updated", owner, properties))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Message(w, "property owner deleted")
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
