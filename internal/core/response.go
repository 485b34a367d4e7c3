// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, message string) {
	OK(w, MessageResponse{Message: message})
}

// JSONError writes err as {message, error?, code}. Errors that are not
// an *AppError are reported as internal errors with the cause attached.
func JSONError(w http.ResponseWriter, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		JSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "internal server error",
			Error:   err.Error(),
			Code:    "INTERNAL_ERROR",
		})
		return
	}

	JSON(w, appErr.StatusCode, ErrorResponse{
		Message: appErr.Message,
		Error:   appErr.Detail,
		Code:    appErr.Code,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func Conflict(w http.ResponseWriter, message string) {
	JSONError(w, ConflictError(message))
}

func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	LoggerFromContext(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	SetSpanError(r.Context(), err)

	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Message: "internal server error",
		Error:   err.Error(),
		Code:    "INTERNAL_ERROR",
	})
}

// ServiceError maps a failure returned by a service to its response.
// An *AppError anywhere in the chain wins; bare sentinels map to their
// default status; anything else is logged and reported as 500.
func ServiceError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	if appErr, ok := AsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			LoggerFromContext(r.Context()).Error("request failed",
				"path", r.URL.Path,
				"error", err,
			)
		}
		JSONError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(w, resource)
	case errors.Is(err, ErrDuplicateKey):
		JSONError(w, DuplicateError("email"))
	case errors.Is(err, ErrConflict):
		Conflict(w, resource+" has dependent records")
	case errors.Is(err, ErrForbidden):
		Forbidden(w, "")
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(w, "")
	case errors.Is(err, ErrInvalidInput):
		BadRequest(w, err.Error())
	case errors.Is(err, ErrServerMisconfigured):
		JSONError(w, MisconfiguredError("server is misconfigured"))
	default:
		InternalServerError(w, r, err)
	}
}
