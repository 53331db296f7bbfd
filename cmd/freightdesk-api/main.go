// README: Entry point; loads config, wires stores and services, serves HTTP until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"freightdesk/internal/config"
	httptransport "freightdesk/internal/http"
	"freightdesk/internal/infra"
	"freightdesk/internal/maps"
	"freightdesk/internal/modules/booking"
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := openRepository(ctx, cfg, logger)
	defer closeRepo()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Fatal("redis init", zap.Error(err))
		}
		defer rdb.Close()
	}

	geo, router, err := buildMaps(cfg, rdb, logger)
	if err != nil {
		logger.Fatal("maps init", zap.Error(err))
	}

	var publisher booking.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		writer := infra.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer writer.Close()
		publisher = booking.NewKafkaPublisher(writer)
		logger.Info("publishing trip events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	fleetSvc := fleet.NewService(repo, logger)
	pricingSvc, err := pricing.NewService(repo, geo, router, pricing.CostParameters{
		FuelPrice:          cfg.Pricing.FuelPrice,
		MonthlySalary:      cfg.Pricing.DriverSalary,
		PerDiem:            cfg.Pricing.PerDiem,
		WorkingDaysInMonth: cfg.Pricing.WorkingDays,
		ProfitMargin:       cfg.Pricing.ProfitMargin,
	}, logger)
	if err != nil {
		logger.Fatal("pricing init", zap.Error(err))
	}
	bookingSvc := booking.NewService(repo, publisher, logger)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Fleet:   fleetSvc,
		Pricing: pricingSvc,
		Booking: bookingSvc,
		Logger:  logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.HTTP.Addr), zap.String("maps_provider", cfg.Maps.Provider))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}

// openRepository uses Postgres when a DSN is configured and a seeded
// in-memory store otherwise.
func openRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (fleet.Repository, func()) {
	if cfg.DB.DSN == "" {
		store := fleet.NewMemoryStore()
		if err := fleet.Seed(ctx, store); err != nil {
			logger.Fatal("seed catalog", zap.Error(err))
		}
		logger.Info("using in-memory fleet store")
		return store, func() {}
	}

	if cfg.DB.Migrate {
		if err := infra.Migrate(cfg.DB.DSN, logger); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	}
	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("db init", zap.Error(err))
	}
	logger.Info("connected to database via pgxpool")
	return fleet.NewPGStore(pool), pool.Close
}

func buildMaps(cfg config.Config, rdb *redis.Client, logger *zap.Logger) (maps.GeoResolver, maps.RoadRouter, error) {
	var (
		geo    maps.GeoResolver
		router maps.RoadRouter
	)
	switch cfg.Maps.Provider {
	case config.ProviderGoogle:
		client, err := maps.NewGoogleClient(cfg.Maps.GoogleKey)
		if err != nil {
			return nil, nil, err
		}
		geo = maps.NewGoogleResolver(client)
		router = maps.NewGoogleRouter(client)
	default:
		geo = maps.NewNominatimResolver(cfg.Maps.NominatimURL, cfg.Maps.UserAgent, cfg.Maps.Timeout)
		router = maps.NewOSRMRouter(cfg.Maps.OSRMURL, cfg.Maps.UserAgent, cfg.Maps.Timeout)
	}

	if rdb != nil {
		geo = maps.NewCachedResolver(geo, rdb, cfg.Redis.CacheTTL, logger)
		router = maps.NewCachedRouter(router, rdb, cfg.Redis.CacheTTL, logger)
	}
	return geo, router, nil
}
