package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/staymarket/listing-service/internal/entity"
	"github.com/staymarket/listing-service/internal/listing"
	"github.com/staymarket/listing-service/internal/usecase"
	"go.uber.org/zap"
)

type ListingHandler struct {
	usecase *usecase.ListingUsecase
	logger  *zap.Logger
}

func NewListingHandler(uc *usecase.ListingUsecase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{usecase: uc, logger: logger}
}

// decodeRawData tolerates an empty or malformed body; the builder rejects
// empty data with its own message.
func decodeRawData(r *http.Request) listing.RawData {
	var data listing.RawData
	_ = json.NewDecoder(r.Body).Decode(&data)
	return data
}

func listingID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, entity.NewInvalidRequest("invalid listing id=%s", raw)
	}
	return id, nil
}

func (h *ListingHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	created, err := h.usecase.CreateListing(r.Context(), decodeRawData(r))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, created)
}

func (h *ListingHandler) HandleGetListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.usecase.ListListings(r.Context(), r.URL.Query())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, listings)
}

func (h *ListingHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	found, err := h.usecase.GetListing(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, found)
}

func (h *ListingHandler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	updated, err := h.usecase.UpdateListing(r.Context(), id, decodeRawData(r))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, updated)
}

func (h *ListingHandler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	if err := h.usecase.DeleteListing(r.Context(), id); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *ListingHandler) HandleListingCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := listingID(r)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	days, err := h.usecase.BuildCalendar(r.Context(), id, r.URL.Query().Get("currency"))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, days)
}
