package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crunchy-cruise/internal/catalog"
	"crunchy-cruise/internal/checkout"
	"crunchy-cruise/internal/config"
	"crunchy-cruise/internal/database"
	"crunchy-cruise/internal/delivery"
	"crunchy-cruise/internal/events"
	"crunchy-cruise/internal/geocode"
	"crunchy-cruise/internal/handler"
	"crunchy-cruise/internal/media"
	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/payment"
	"crunchy-cruise/internal/repository"
	"crunchy-cruise/internal/router"
	"crunchy-cruise/internal/service"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting crunchy-cruise API server")
	if cfg.DotEnvFile != "" {
		logger.Info().Str("file", cfg.DotEnvFile).Msg("loaded environment file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	settingsRepo := repository.NewSettingsRepository(pool, logger)
	cartStore := repository.NewCartStore(pool, logger)

	var s3Client *s3.Client
	if cfg.S3.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to load AWS config, falling back to local file system only")
		} else {
			s3Client = s3.NewFromConfig(awsCfg)
		}
	}

	origin := model.Coordinates{Lat: cfg.Store.Lat, Lng: cfg.Store.Lng}
	geocoder := newGeocoder(cfg.Geocoding, logger)
	calculator := newCalculator(cfg.Store, origin, cfg.Geocoding.Timeout, logger)

	var payments checkout.PaymentVerifier
	if cfg.Payment.PaystackSecret != "" {
		payments = payment.NewPaystackVerifier(cfg.Payment.PaystackURL, cfg.Payment.PaystackSecret, cfg.Payment.Timeout, logger)
	} else {
		logger.Info().Msg("paystack secret not set, paid checkout disabled")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Messaging.AMQPURL != "" {
		amqpPublisher, err := events.DialAMQP(cfg.Messaging.AMQPURL, cfg.Messaging.Queue, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to RabbitMQ, order events disabled")
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	// Services
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, publisher, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	flow := checkout.NewFlow(settingsService, orderService, payments, logger)
	cartService := service.NewCartService(cartStore, productService, geocoder, calculator, flow, logger)

	if len(cfg.Catalog.SeedFiles) > 0 {
		seedCatalog(ctx, cfg, s3Client, productService, logger)
	}

	var uploads media.Store
	uploadDir := ""
	if s3Client != nil {
		uploads = media.NewS3Store(s3Client, cfg.S3.Bucket, cfg.S3.MediaPrefix, logger)
	} else {
		local, err := media.NewLocalStore(cfg.Media.UploadDir, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize upload directory: %w", err)
		}
		uploads = local
		uploadDir = local.Dir()
	}

	// HTTP handlers
	handlers := router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Checkout: handler.NewCheckoutHandler(cartService, payments, calculator, origin, logger),
		Settings: handler.NewSettingsHandler(settingsService, logger),
		Upload:   handler.NewUploadHandler(uploads, logger),
	}

	mux := router.New(handlers, router.Options{
		APIKey:         cfg.Auth.APIKey,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		UploadDir:      uploadDir,
		Ready:          pool.Ping,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newGeocoder prefers OpenCage when a key is configured and falls back to
// Nominatim.
func newGeocoder(cfg config.GeocodingConfig, logger zerolog.Logger) geocode.Geocoder {
	var providers []geocode.Geocoder
	if cfg.OpenCageKey != "" {
		providers = append(providers, geocode.NewOpenCageClient(cfg.OpenCageURL, cfg.OpenCageKey, cfg.CountryCode, cfg.Timeout, logger))
	}
	if cfg.NominatimURL != "" {
		providers = append(providers, geocode.NewNominatimClient(cfg.NominatimURL, cfg.UserAgent, cfg.CountryCode, cfg.Timeout, logger))
	}
	return geocode.NewFallback(logger, providers...)
}

func newCalculator(cfg config.StoreConfig, origin model.Coordinates, timeout time.Duration, logger zerolog.Logger) delivery.Calculator {
	if cfg.CalculatorURL != "" {
		logger.Info().Str("url", cfg.CalculatorURL).Msg("using remote distance calculator")
		return delivery.NewRemoteCalculator(cfg.CalculatorURL, timeout, logger)
	}
	return delivery.NewLocalCalculator(origin)
}

// seedCatalog upserts the configured catalogue files. Failures are logged and
// the server starts with whatever is already stored.
func seedCatalog(ctx context.Context, cfg *config.Config, client *s3.Client, products service.ProductService, logger zerolog.Logger) {
	var s3Loader catalog.Loader
	if client != nil {
		s3Loader = catalog.NewS3Loader(client, cfg.S3.Bucket, logger)
	}
	loader := catalog.NewFallbackLoader(s3Loader, catalog.NewFileLoader(logger), cfg.S3.Prefix, client != nil, logger)

	seedCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	report, err := catalog.NewSeeder(loader, products, logger).Seed(seedCtx, cfg.Catalog.SeedFiles)
	if err != nil {
		logger.Error().Err(err).Msg("catalogue seeding failed")
		return
	}
	logger.Info().
		Int("files", report.Files).
		Int("upserted", report.Upserted).
		Int("invalid", report.Invalid).
		Msg("catalogue seeded")
}
