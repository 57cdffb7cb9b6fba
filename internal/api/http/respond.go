package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps business-rule failures to distinct status codes;
// anything unrecognized is treated as an infrastructure failure.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrBorrowerNotFound),
		errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrLoanNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRoleNotPermitted),
		errors.Is(err, domain.ErrLoanOwnershipMismatch):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrBookNotAvailable),
		errors.Is(err, domain.ErrBorrowingLimitExceeded),
		errors.Is(err, domain.ErrInvalidLoanState),
		errors.Is(err, domain.ErrDuplicateISBN),
		errors.Is(err, domain.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDueDate):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
