// Package jsonfile persists listings as a single JSON array under
// <base_dir>/data/listing.json, the service's default store.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/staymarket/listing-service/internal/entity"
	"go.uber.org/zap"
)

const fileMode = 0o644

type ListingRepository struct {
	path   string
	logger *zap.Logger
}

func NewListingRepository(baseDir string, logger *zap.Logger) *ListingRepository {
	return &ListingRepository{
		path:   filepath.Join(baseDir, "data", "listing.json"),
		logger: logger,
	}
}

// ReadAll returns every stored listing in file order. A missing file is an
// empty store, not an error.
func (r *ListingRepository) ReadAll(_ context.Context) ([]entity.Listing, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile.ReadAll: %w", err)
	}
	var listings []entity.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, fmt.Errorf("jsonfile.ReadAll: decode %s: %w", r.path, err)
	}
	return listings, nil
}

// WriteAll replaces the whole store, creating the data directory on first use.
func (r *ListingRepository) WriteAll(_ context.Context, listings []entity.Listing) error {
	if listings == nil {
		listings = []entity.Listing{}
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("jsonfile.WriteAll: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("jsonfile.WriteAll: %w", err)
	}
	if err := os.WriteFile(r.path, raw, fileMode); err != nil {
		return fmt.Errorf("jsonfile.WriteAll: %w", err)
	}
	r.logger.Debug("Wrote listing store", zap.String("path", r.path), zap.Int("count", len(listings)))
	return nil
}
