package http

import (
	"errors"
	"net/http"

	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/go-chi/render"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	AppCode    int64  `json:"code,omitempty"`  // application-specific error code
	ErrorText  string `json:"error,omitempty"` // application-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrUnauthorized(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Unauthorized.",
		ErrorText:      err.Error(),
	}
}

func ErrForbidden(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     "Forbidden.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict.",
		ErrorText:      err.Error(),
	}
}

func ErrTooManyRequests(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusTooManyRequests,
		StatusText:     "Too many requests.",
		ErrorText:      err.Error(),
	}
}

// ErrInternalServerError hides the underlying error from the client.
func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
	}
}

// errDomain maps known domain sentinels to the right response, falling back
// to an opaque 500.
func errDomain(err error) render.Renderer {
	switch {
	case errors.Is(err, gerr.ErrOrderNotFound),
		errors.Is(err, gerr.ErrProductNotFound),
		errors.Is(err, gerr.ErrAccountNotFound),
		errors.Is(err, gerr.ErrReviewNotFound),
		errors.Is(err, gerr.ErrOTPNotFound):
		return ErrNotFound(err)
	case errors.Is(err, gerr.ErrInsufficientStock),
		errors.Is(err, gerr.ErrPromoNotValid),
		errors.Is(err, gerr.ErrBadStatusChange):
		return ErrConflict(err)
	case errors.Is(err, gerr.ErrOTPExpired),
		errors.Is(err, gerr.ErrOTPMismatch),
		errors.Is(err, gerr.ErrOTPMaxAttempts):
		return ErrInvalidRequest(err)
	default:
		return ErrInternalServerError(err)
	}
}
