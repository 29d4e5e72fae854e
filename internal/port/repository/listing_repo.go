package repository

import (
	"context"

	"github.com/staymarket/listing-service/internal/entity"
)

// ListingRepository is the durable listing store: full read, full replace.
// Implementations do not serialize writers; the deployment runs a single
// logical writer (see the jsonfile and mongodb adapters).
type ListingRepository interface {
	ReadAll(ctx context.Context) ([]entity.Listing, error)
	WriteAll(ctx context.Context, listings []entity.Listing) error
}
