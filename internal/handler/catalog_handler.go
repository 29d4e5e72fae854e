package handler

import (
	"net/http"

	"github.com/staymarket/listing-service/internal/entity"
	"go.uber.org/zap"
)

// CatalogHandler serves the fixed market and currency catalogs.
type CatalogHandler struct {
	logger *zap.Logger
}

func NewCatalogHandler(logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

func (h *CatalogHandler) HandleGetMarkets(w http.ResponseWriter, _ *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, entity.Markets())
}

func (h *CatalogHandler) HandleGetCurrencies(w http.ResponseWriter, _ *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, entity.Currencies())
}
