package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/staymarket/listing-service/internal/entity"
	"go.uber.org/zap"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(logger *zap.Logger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses: invalid
// request → 422, not found → 404, anything else → 500.
func respondError(logger *zap.Logger, w http.ResponseWriter, err error) {
	switch {
	case entity.IsInvalidRequest(err):
		respondJSON(logger, w, http.StatusUnprocessableEntity, errorResponse{Message: err.Error()})
	case errors.Is(err, entity.ErrListingNotFound),
		errors.Is(err, entity.ErrCurrencyNotFound),
		errors.Is(err, entity.ErrMarketNotFound):
		respondJSON(logger, w, http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		logger.Error("Request failed", zap.Error(err))
		respondJSON(logger, w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}
