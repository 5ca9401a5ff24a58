package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"order_entry/internal/catalog"
	"order_entry/internal/config"
	"order_entry/internal/database"
	"order_entry/internal/handlers"
	"order_entry/internal/logging"
	"order_entry/internal/redis"
	"order_entry/internal/repository"
	"order_entry/internal/services"
	"order_entry/internal/session"
	"order_entry/pkg/gateway"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load reference data
	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeoutDuration())
	cat, shades, err := loadReferenceData(loadCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("failed to load reference data", zap.String("source", cfg.ReferenceSource), zap.Error(err))
	}

	// Initialize session store
	var store session.Store
	switch cfg.SessionStore {
	case config.StoreRedis:
		redisClient, err := redis.Initialize(ctx, cfg.RedisURL, cfg.SessionTTL())
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = redisClient
	default:
		store = session.NewMemoryStore(cfg.SessionTTL())
	}

	// Initialize message gateway
	var dispatcher services.Dispatcher
	if cfg.GatewayURL != "" {
		dispatcher = gateway.NewClient(cfg.GatewayURL, cfg.GatewayUsername, cfg.GatewayPassword, cfg.GatewayPath)
	} else {
		logger.Info("no message gateway configured, confirmed orders are returned to the caller only")
	}

	// Initialize services
	catalogService := services.NewCatalogService(cat, shades, logger)
	orderService := services.NewOrderService(cat, store, dispatcher, cfg.OrderRecipient, logger)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(catalogService, orderService, logger)

	// Setup routes
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger))
	apiHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadReferenceData builds the catalog from the configured source. Shade
// charts always come from files, local or remote.
func loadReferenceData(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, services.ShadeLoader, error) {
	var source catalog.Source = catalog.NewDirSource(cfg.ReferenceDir)
	if cfg.ReferenceURL != "" {
		source = catalog.NewHTTPSource(cfg.ReferenceURL)
	}
	loader := catalog.NewLoader(source, cfg.Files(), cfg.Separator, logger)

	switch cfg.ReferenceSource {
	case config.SourceDatabase:
		db, err := database.Initialize(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		cat, err := catalog.NewStoreLoader(repository.NewReferenceRepository(db), logger).Load(ctx)
		return cat, loader, err
	case config.SourceHTTP:
		if cfg.ReferenceURL == "" {
			return nil, nil, errors.New("REFERENCE_URL is required for the http reference source")
		}
	}

	cat, err := loader.Load(ctx)
	return cat, loader, err
}
