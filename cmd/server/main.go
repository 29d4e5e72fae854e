package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staymarket/listing-service/internal/adapter/cache/redis"
	"github.com/staymarket/listing-service/internal/adapter/jsonfile"
	"github.com/staymarket/listing-service/internal/adapter/mongodb"
	natsadapter "github.com/staymarket/listing-service/internal/adapter/nats"
	"github.com/staymarket/listing-service/internal/config"
	"github.com/staymarket/listing-service/internal/exchange"
	"github.com/staymarket/listing-service/internal/handler"
	"github.com/staymarket/listing-service/internal/middleware"
	"github.com/staymarket/listing-service/internal/port/cache"
	"github.com/staymarket/listing-service/internal/port/repository"
	"github.com/staymarket/listing-service/internal/router"
	"github.com/staymarket/listing-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	repo, cleanup, err := newRepository(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize listing store", zap.Error(err))
	}
	defer cleanup()

	rates, err := newRateProvider(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize rate provider", zap.Error(err))
	}

	var listingCache cache.ListingCache
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		listingCache = redis.NewListingCache(client, logger)
	}

	var events usecase.EventPublisher
	if cfg.NATS.Enabled {
		publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
	}

	uc := usecase.NewListingUsecase(repo, rates, events, listingCache, logger)
	listingHandler := handler.NewListingHandler(uc, logger)
	catalogHandler := handler.NewCatalogHandler(logger)

	mux := chi.NewRouter()
	mux.Use(middleware.Logger(logger))
	router.Setup(mux, listingHandler, catalogHandler)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	logger.Info("Starting listing service", zap.String("address", addr), zap.String("mode", cfg.Mode))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == config.ModeProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newRepository(cfg *config.Config, logger *zap.Logger) (repository.ListingRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMongo:
		client, err := mongodb.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.ConnectTimeout, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
			}
		}
		return mongodb.NewListingRepository(client.Database(cfg.Mongo.Database), logger), cleanup, nil
	case config.StorageDriverFile:
		return jsonfile.NewListingRepository(cfg.Storage.BaseDir, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// newRateProvider wires the live feed in production and the fixed offline
// table everywhere else, keeping non-production runs networkless.
func newRateProvider(cfg *config.Config, logger *zap.Logger) (exchange.Provider, error) {
	if cfg.Mode != config.ModeProduction {
		return exchange.StaticProvider{}, nil
	}
	return exchange.NewClient(cfg.Exchange.APIKey, cfg.Exchange.BaseURL, logger)
}
