package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/predictle/predictle/internal/domain"
	"github.com/predictle/predictle/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent; nothing to do but log.
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps domain errors to HTTP statuses with a safe,
// user-facing message. Unrecognised errors become opaque 500s so internal
// details never leak to clients.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusNotFound, domain.ErrMsgUserNotFound)
	case errors.Is(err, domain.ErrPredictionNotFound):
		respondError(w, http.StatusNotFound, domain.ErrMsgPredictionNotFound)
	case errors.Is(err, domain.ErrDuplicateVote):
		respondError(w, http.StatusConflict, domain.ErrMsgDuplicateVote)
	case errors.Is(err, domain.ErrAlreadyResolved):
		respondError(w, http.StatusConflict, domain.ErrMsgAlreadyResolved)
	case errors.Is(err, domain.ErrPredictionClosed):
		respondError(w, http.StatusConflict, domain.ErrMsgPredictionClosed)
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error(opName+" failed: storage unavailable", "error", err)
		respondError(w, http.StatusServiceUnavailable, "Server is temporarily unavailable. Please try again later.")
	default:
		log.Error(opName+" failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
