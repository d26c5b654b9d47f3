package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/growthbot/internal/progress"
	"github.com/example/growthbot/pkg/models"
)

// ErrorResponse is the error envelope returned by every route
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

const (
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeStorage    = "malformed_storage"
	codeInternal   = "internal"
)

// ToStatusCode maps an error code to its HTTP status
func ToStatusCode(code string) int {
	switch code {
	case codeNotFound:
		return http.StatusNotFound
	case codeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidStatus):
		return codeBadRequest
	case errors.Is(err, progress.ErrRecordNotFound):
		return codeNotFound
	case errors.Is(err, progress.ErrMalformedStorage):
		return codeStorage
	default:
		return codeInternal
	}
}

func writeError(w http.ResponseWriter, r *http.Request, code, message string) {
	writeJSON(w, ToStatusCode(code), ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, errorCode(err), err.Error())
}
