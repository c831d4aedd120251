package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"skip-checkout/app/controller"
	"skip-checkout/app/router"
	"skip-checkout/catalog"
	"skip-checkout/config"
	"skip-checkout/db"
	"skip-checkout/metrics"
	"skip-checkout/models"
	"skip-checkout/repository"
	"skip-checkout/service"
	"skip-checkout/session"
)

// NewLoader builds the catalog loader for the configured source
func NewLoader(ctx context.Context, cfg *config.Config) (catalog.Loader, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		if err := db.InitDB(ctx, cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Info().Msg("catalog source: postgres")
		return repository.NewSkipRepository(db.DB), nil
	default:
		log.Info().Str("url", cfg.CatalogAPIURL).Msg("catalog source: skips API")
		return service.NewCatalogAPILoader(cfg.CatalogAPIURL, cfg.CatalogTimeout, cfg.CatalogRateLimit), nil
	}
}

// Initialize initializes the application and returns its HTTP handler
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	metrics.Init(cfg.StatsdAddr, cfg.Env)
	metrics.AddGlobalTags([]string{"catalog_source:" + cfg.CatalogSource})

	loader, err := NewLoader(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Initialize session store
	store := session.NewStore(loader, cfg.InitialStep)

	// Initialize services
	quoteService := service.NewQuoteService(cfg.BaseURL, cfg.ChromePath)
	imageService := service.NewSkipImageService(cfg.AssetsDir)

	// Create controllers
	controllers := &router.Controllers{
		Checkout: controller.NewCheckoutController(store, quoteService, models.Location{
			Postcode: cfg.DefaultPostcode,
			Area:     cfg.DefaultArea,
		}),
		SkipImage: controller.NewSkipImageController(imageService),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return mux, nil
}

// Shutdown releases resources held by the application
func Shutdown() {
	if err := db.CloseDB(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
	if err := metrics.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close metrics client")
	}
}
