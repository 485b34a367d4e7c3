// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/turisgal/backend/internal/core"
	"github.com/turisgal/backend/internal/middleware"
)

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

// RegisterRoutes mounts /auth. loginLimit wraps the two login endpoints.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	loginLimit func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if loginLimit != nil {
				r.Use(loginLimit)
			}
			r.Post("/login", h.Login)
			r.Post("/owner/login", h.OwnerLogin)
		})

		r.With(authenticator).Get("/me", h.Me)
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.writeLoginError(w, r, err, "user")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) OwnerLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	resp, err := h.service.OwnerLogin(r.Context(), req)
	if err != nil {
		h.writeLoginError(w, r, err, "property owner")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	core.OK(w, MeResponse{
		Message: "access granted",
		User: IdentityView{
			UserID: identity.UserID,
			Email:  identity.Email,
			Role:   identity.Role,
		},
	})
}

func (h *Handler) decodeLogin(w http.ResponseWriter, r *http.Request) (LoginRequest, bool) {
	var req LoginRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.BadRequest(w, "email and password are required")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}

func (h *Handler) writeLoginError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	resource string,
) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, ErrInvalidCredentials):
		core.Unauthorized(w, "incorrect password")
	case errors.Is(err, core.ErrServerMisconfigured):
		core.JSONError(w, core.MisconfiguredError("JWT secret is not configured"))
	default:
		core.InternalServerError(w, r, err)
	}
}
