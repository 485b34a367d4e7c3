// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/turisgal/backend/internal/core"
	"github.com/turisgal/backend/internal/middleware"
)

const resourceName = "user"

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

// RegisterRoutes mounts /users. Static segments are registered before
// /{id} so that /me and /export never match the id route.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/me", h.GetMe)
			r.Put("/me", h.UpdateMe)
			r.Delete("/me", h.DeleteMe)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Get("/", h.List)
				r.Get("/export", h.Export)
				r.Get("/{id}", h.Get)
				r.Put("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
				r.Patch("/{id}/password", h.ChangePassword)
			})
		})
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := ParseFilter(q)
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	params := ListParams{Filter: filter, PageParams: core.ParsePage(q)}

	users, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, UserListResponse{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
		Users: ToUserResponseList(users),
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
		core.LoggerFromContext(r.Context()).Error("write users csv", "error", err)
	}
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	user, counts, err := h.service.GetMe(r.Context(), identity)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, UserDetailResponse{UserResponse: ToUserResponse(user), Count: counts})
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req UpdateMeRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.UpdateMe(r.Context(), identity, req)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	if err := h.service.DeleteMe(r.Context(), identity); err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Message(w, "account deleted")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, counts, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, UserDetailResponse{UserResponse: ToUserResponse(user), Count: counts})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	if err := h.service.Delete(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Message(w, "user deleted")
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), chi.URLParam(r, "id"), req.NewPassword); err != nil {
		core.ServiceError(w, r, err, resourceName)
		return
	}

	core.Message(w, "password updated")
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
