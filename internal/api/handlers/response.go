// Package handlers общие функции HTTP ответов и разбора запросов
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

const (
	msgInternalError      = "internal server error"
	msgServiceUnavailable = "service temporarily unavailable, retry later"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var statusKinds = map[int]string{
	http.StatusBadRequest:          "InvalidInput",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "AccessDenied",
	http.StatusNotFound:            "NotFound",
	http.StatusConflict:            "Conflict",
	http.StatusUnprocessableEntity: "InvalidDate",
	http.StatusServiceUnavailable:  "Unavailable",
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку с видом по HTTP статусу
func RespondError(w http.ResponseWriter, status int, message string) {
	kind, ok := statusKinds[status]
	if !ok {
		kind = "Internal"
	}
	respondKind(w, status, kind, message)
}

// RespondDomainError отправляет отказ из таксономии с его видом и причиной.
// Прочие ошибки отдаются как 500 без подробностей.
func RespondDomainError(w http.ResponseWriter, err error) {
	if !domain.IsExpected(err) {
		RespondInternalError(w)
		return
	}
	respondKind(w, StatusFor(err), domain.KindOf(err), domain.ReasonOf(err))
}

// StatusFor HTTP статус для ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrBlackout),
		errors.Is(err, domain.ErrPreparationConflict),
		errors.Is(err, domain.ErrDuplicateBooking),
		errors.Is(err, domain.ErrDuplicateBlackout),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondServiceUnavailable 503
func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	respondKind(w, http.StatusInternalServerError, "Internal", msgInternalError)
}

func respondKind(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Kind: kind, Message: message})
}
