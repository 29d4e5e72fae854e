package cache

import (
	"context"
	"errors"

	"github.com/staymarket/listing-service/internal/entity"
)

// ErrNotFound is returned on a cache miss.
var ErrNotFound = errors.New("cache: key not found")

// ListingCache is an optional read-through cache for listing-by-id lookups.
type ListingCache interface {
	GetListing(ctx context.Context, id int64) (*entity.Listing, error)
	SetListing(ctx context.Context, listing *entity.Listing) error
	DeleteListing(ctx context.Context, id int64) error
}
