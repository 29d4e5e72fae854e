package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/staymarket/listing-service/internal/calendar"
	"github.com/staymarket/listing-service/internal/entity"
	"github.com/staymarket/listing-service/internal/exchange"
	"github.com/staymarket/listing-service/internal/listing"
	"github.com/staymarket/listing-service/internal/port/cache"
	"github.com/staymarket/listing-service/internal/port/repository"
	"go.uber.org/zap"
)

// EventPublisher emits listing lifecycle events. Implementations may be nil;
// the usecase treats publishing as best-effort.
type EventPublisher interface {
	PublishListingCreated(ctx context.Context, listing *entity.Listing) error
	PublishListingUpdated(ctx context.Context, listing *entity.Listing) error
	PublishListingDeleted(ctx context.Context, id int64) error
}

type ListingUsecase struct {
	repo   repository.ListingRepository
	rates  exchange.Provider
	events EventPublisher
	cache  cache.ListingCache
	logger *zap.Logger
}

func NewListingUsecase(
	repo repository.ListingRepository,
	rates exchange.Provider,
	events EventPublisher,
	listingCache cache.ListingCache,
	logger *zap.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		rates:  rates,
		events: events,
		cache:  listingCache,
		logger: logger,
	}
}

// CreateListing validates raw request data, assigns a fresh id from the
// current snapshot and appends the listing to the store.
func (uc *ListingUsecase) CreateListing(ctx context.Context, data listing.RawData) (*entity.Listing, error) {
	existing, err := uc.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListingUsecase.CreateListing: read store: %w", err)
	}
	built, err := listing.Build(data, existing)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.WriteAll(ctx, append(existing, built)); err != nil {
		return nil, fmt.Errorf("ListingUsecase.CreateListing: write store: %w", err)
	}
	uc.logger.Info("Created listing", zap.Int64("listing_id", built.ID), zap.String("market", built.Market.Code))

	uc.cacheSet(ctx, &built)
	if uc.events != nil {
		if err := uc.events.PublishListingCreated(ctx, &built); err != nil {
			uc.logger.Warn("Failed to publish listing created event", zap.Int64("listing_id", built.ID), zap.Error(err))
		}
	}
	return &built, nil
}

// ListListings returns the filtered listing sequence, order preserved.
func (uc *ListingUsecase) ListListings(ctx context.Context, params url.Values) ([]entity.Listing, error) {
	all, err := uc.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListingUsecase.ListListings: read store: %w", err)
	}
	filtered, err := listing.Filter(ctx, all, params, uc.rates)
	if err != nil {
		return nil, err
	}
	if filtered == nil {
		filtered = []entity.Listing{}
	}
	return filtered, nil
}

// GetListing fetches one listing by id, consulting the cache first when one
// is configured.
func (uc *ListingUsecase) GetListing(ctx context.Context, id int64) (*entity.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Listing cache read failed", zap.Int64("listing_id", id), zap.Error(err))
		}
	}

	all, err := uc.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListingUsecase.GetListing: read store: %w", err)
	}
	for i := range all {
		if all[i].ID == id {
			uc.cacheSet(ctx, &all[i])
			return &all[i], nil
		}
	}
	return nil, entity.ErrListingNotFound
}

// UpdateListing applies recognized keys from data onto the stored listing and
// rewrites the store.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, id int64, data listing.RawData) (*entity.Listing, error) {
	all, err := uc.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListingUsecase.UpdateListing: read store: %w", err)
	}
	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entity.ErrListingNotFound
	}
	if err := listing.ApplyUpdate(&all[idx], data); err != nil {
		return nil, err
	}
	if err := uc.repo.WriteAll(ctx, all); err != nil {
		return nil, fmt.Errorf("ListingUsecase.UpdateListing: write store: %w", err)
	}
	uc.logger.Info("Updated listing", zap.Int64("listing_id", id))

	uc.cacheSet(ctx, &all[idx])
	if uc.events != nil {
		if err := uc.events.PublishListingUpdated(ctx, &all[idx]); err != nil {
			uc.logger.Warn("Failed to publish listing updated event", zap.Int64("listing_id", id), zap.Error(err))
		}
	}
	return &all[idx], nil
}

// DeleteListing removes a listing by id. Deleting an absent id returns
// entity.ErrListingNotFound, so a second delete of the same id fails.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, id int64) error {
	all, err := uc.repo.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("ListingUsecase.DeleteListing: read store: %w", err)
	}
	remaining := make([]entity.Listing, 0, len(all))
	found := false
	for _, l := range all {
		if l.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, l)
	}
	if !found {
		return entity.ErrListingNotFound
	}
	if err := uc.repo.WriteAll(ctx, remaining); err != nil {
		return fmt.Errorf("ListingUsecase.DeleteListing: write store: %w", err)
	}
	uc.logger.Info("Deleted listing", zap.Int64("listing_id", id))

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, id); err != nil {
			uc.logger.Warn("Listing cache delete failed", zap.Int64("listing_id", id), zap.Error(err))
		}
	}
	if uc.events != nil {
		if err := uc.events.PublishListingDeleted(ctx, id); err != nil {
			uc.logger.Warn("Failed to publish listing deleted event", zap.Int64("listing_id", id), zap.Error(err))
		}
	}
	return nil
}

// BuildCalendar produces the 365-day price series for a listing. With no
// display currency the prices stay native (factor 1); otherwise the factor is
// the rate-table entry for the listing's own currency, fetched relative to
// the requested display currency.
func (uc *ListingUsecase) BuildCalendar(ctx context.Context, id int64, currencyCode string) ([]calendar.Day, error) {
	l, err := uc.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	factor := 1.0
	displayCode := l.Currency.Code
	if currencyCode != "" {
		currency, err := entity.CurrencyByCode(currencyCode)
		if err != nil {
			return nil, entity.NewInvalidRequest("currency with code=%s does not exist", currencyCode)
		}
		table := uc.rates.LatestRates(ctx, currency.Code)
		factor = table.Rate(l.Currency.Code)
		displayCode = currency.Code
	}
	return calendar.Build(*l, factor, displayCode), nil
}

func (uc *ListingUsecase) cacheSet(ctx context.Context, l *entity.Listing) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetListing(ctx, l); err != nil {
		uc.logger.Warn("Listing cache write failed", zap.Int64("listing_id", l.ID), zap.Error(err))
	}
}
