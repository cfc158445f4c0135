package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"ulascansenturk/weather-dashboard/config"
	"ulascansenturk/weather-dashboard/internal/api/v1/handlers"
	"ulascansenturk/weather-dashboard/internal/db/kvstore"
	"ulascansenturk/weather-dashboard/internal/inmemorycache"
	"ulascansenturk/weather-dashboard/internal/mapview"
	"ulascansenturk/weather-dashboard/internal/providers"
	"ulascansenturk/weather-dashboard/internal/recency"
	"ulascansenturk/weather-dashboard/internal/service"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Str("env", conf.Env).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())

	store, closeStore, err := initializeStorage(conf)
	if err != nil {
		log.Fatal().Err(err).Str("backend", conf.StorageBackend).Msg("failed to initialize storage")
	}
	defer closeStore()

	if conf.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY is empty, upstream lookups will be rejected")
	}

	cacheProvider := inmemorycache.NewInMemoryCacheProvider(time.Duration(time.Second * 60))
	defer cacheProvider.Close()

	client := providers.NewOpenWeatherClient(providers.Options{
		BaseURL:           conf.OpenWeatherBaseURL,
		APIKey:            conf.OpenWeatherAPIKey,
		Timeout:           conf.UpstreamTimeout,
		RequestsPerSecond: conf.UpstreamRPS,
		Burst:             conf.UpstreamBurst,
	})

	recents := recency.NewStore(ctx, store, conf.RecentsKey)

	dashboardService := service.NewDashboardService(
		providers.NewCachedClient(client, cacheProvider, conf.CacheTTL),
		recents,
		mapview.NewTracker(),
		conf.DefaultCity,
		conf.DefaultUnits,
	)

	handler := handlers.NewWeatherHandler(dashboardService, conf.HTTPTimeoutDuration())

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func() {
		shutdownErr := httpServer.Shutdown(ctx)
		if shutdownErr != nil {
			log.Fatal().Err(shutdownErr).Msg("server shutdown failed")
		}
	})

	log.Info().
		Str("backend", conf.StorageBackend).
		Str("units", string(conf.DefaultUnits)).
		Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil {
		log.Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

// initializeStorage opens the key-value backend that persists recent cities.
func initializeStorage(conf *config.Config) (kvstore.Store, func(), error) {
	switch conf.StorageBackend {
	case config.BackendPostgres:
		db, err := initializeDatabase(conf)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewRepository(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}, nil
	case config.BackendValkey:
		client, err := kvstore.NewValkeyClient(conf.ValkeyAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect valkey: %w", err)
		}
		store := kvstore.NewValkeyStore(client, conf.ServiceName)
		return store, func() { store.Close() }, nil
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), func() {}, nil
	default:
		store, err := kvstore.OpenSQLite(conf.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close sqlite store")
			}
		}, nil
	}
}

func initializeDatabase(config *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&kvstore.Entry{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback()

		cancel()
		cancelCtx()
	}()
}
