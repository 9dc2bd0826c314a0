package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/octobees/estate-listings/api/internal/auth"
	"github.com/octobees/estate-listings/api/internal/config"
	"github.com/octobees/estate-listings/api/internal/database"
	"github.com/octobees/estate-listings/api/internal/handler"
	"github.com/octobees/estate-listings/api/internal/logging"
	"github.com/octobees/estate-listings/api/internal/media"
	middlewarepkg "github.com/octobees/estate-listings/api/internal/middleware"
	"github.com/octobees/estate-listings/api/internal/repository"
	"github.com/octobees/estate-listings/api/internal/router"
	"github.com/octobees/estate-listings/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare users schema")
	}

	store, closeStore := openPropertyStore(ctx, cfg, logger)
	defer closeStore()

	cached := repository.NewCachedPropertyStore(store, cfg.CacheSize, cfg.CacheTTL)
	defer cached.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	authService := service.NewAuthService(usersRepo, jwtManager)
	propertiesService := service.NewPropertiesService(cached)

	var uploader media.Uploader
	if cfg.MediaBaseURL != "" {
		uploader = media.NewClient(&http.Client{Timeout: 30 * time.Second}, cfg.MediaBaseURL, cfg.MediaUploadPreset)
	} else {
		logger.Warn().Msg("MEDIA_BASE_URL not set, image uploads disabled")
	}

	limiter := middlewarepkg.NewRateLimiter(cfg.RateLimit, 0)
	defer limiter.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit("32M"))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		ExposeHeaders: []string{echo.HeaderXRequestID, handler.HeaderPageLimit},
	}))

	router.Register(e, cfg, jwtManager, authService, limiter, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Properties: handler.NewPropertiesHandler(propertiesService),
		Media:      handler.NewMediaHandler(uploader),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("prefix", cfg.APIPrefix).Str("store", cfg.StoreDriver).Msg("server starting")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openPropertyStore returns the configured listing store and its cleanup.
func openPropertyStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.PropertyStore, func()) {
	if cfg.StoreDriver == "memory" {
		logger.Warn().Msg("using in-memory property store, listings are lost on restart")
		return repository.NewMemoryPropertyStore(), func() {}
	}

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect mongo")
	}
	collection := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
	if err := database.EnsureIndexes(ctx, collection.Indexes()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure property indexes")
	}

	return repository.NewMongoPropertyStore(collection), func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("mongo disconnect failed")
		}
	}
}
