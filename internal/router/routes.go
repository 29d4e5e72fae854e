package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/staymarket/listing-service/internal/handler"
)

// Setup registers every route on the mux.
func Setup(mux *chi.Mux, listings *handler.ListingHandler, catalogs *handler.CatalogHandler) {
	mux.Get("/markets", catalogs.HandleGetMarkets)
	mux.Get("/currencies", catalogs.HandleGetCurrencies)

	mux.Get("/listings", listings.HandleGetListings)
	mux.Post("/listings", listings.HandleCreateListing)
	mux.Get("/listings/{id}", listings.HandleGetListing)
	mux.Put("/listings/{id}", listings.HandleUpdateListing)
	mux.Delete("/listings/{id}", listings.HandleDeleteListing)
	mux.Get("/listings/{id}/calendar", listings.HandleListingCalendar)
}
