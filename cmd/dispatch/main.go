package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/circuitbreaker"
	"github.com/piresc/antar/internal/pkg/config"
	"github.com/piresc/antar/internal/pkg/database"
	"github.com/piresc/antar/internal/pkg/health"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/pkg/middleware"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/pkg/nats"
	nrpkg "github.com/piresc/antar/internal/pkg/newrelic"
	"github.com/piresc/antar/internal/pkg/nsq"
	"github.com/piresc/antar/internal/pkg/server"
	"github.com/piresc/antar/internal/pkg/validation"
	"github.com/piresc/antar/services/dispatch"
	"github.com/piresc/antar/services/dispatch/gateway"
	"github.com/piresc/antar/services/dispatch/handler"
	httpHandler "github.com/piresc/antar/services/dispatch/handler/http"
	"github.com/piresc/antar/services/dispatch/repository"
	"github.com/piresc/antar/services/dispatch/usecase"
)

const (
	appName    = "dispatch-service"
	configPath = "config/dispatch.env"

	quoteRateLimit  = 120
	quoteRatePeriod = time.Minute
)

// stores bundles the three storage ports for the selected backend
type stores struct {
	drivers dispatch.DriverDirectory
	orders  dispatch.OrderRepo
	zones   dispatch.ZoneCatalog
}

func main() {
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("backend", configs.Dispatch.Backend),
		logger.String("event_broker", configs.Events.Broker),
	)

	var zones []*models.DeliveryZone
	if configs.Dispatch.ZonesFile != "" {
		zones, err = config.LoadZonesFile(configs.Dispatch.ZonesFile)
		if err != nil {
			zapLogger.Fatal("Failed to load delivery zones", logger.Err(err))
		}
		logger.Info("Loaded delivery zones", logger.Int("count", len(zones)))
	}
	memStore := repository.NewMemoryStore(zones)

	healthService := health.NewHealthService(zapLogger)
	var cleanups []func(context.Context) error

	// Storage backend
	st := stores{drivers: memStore, orders: memStore, zones: memStore}
	var redisClient *database.RedisClient
	if configs.Dispatch.Backend != "memory" {
		postgresClient, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
		}
		cleanups = append(cleanups, func(context.Context) error {
			zapLogger.Info("Closing PostgreSQL connection...")
			return postgresClient.Close()
		})

		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		cleanups = append(cleanups, func(context.Context) error {
			zapLogger.Info("Closing Redis connection...")
			return redisClient.Close()
		})

		zoneRepo := repository.NewZoneRepository(postgresClient.GetDB())
		if len(zones) > 0 {
			seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := zoneRepo.SaveZones(seedCtx, zones)
			cancel()
			if err != nil {
				zapLogger.Fatal("Failed to seed delivery zones", logger.Err(err))
			}
		}
		catalog := repository.NewBreakerCatalog(zoneRepo, memStore, circuitbreaker.DefaultConfig("zone_catalog"), zapLogger)

		st = stores{
			drivers: repository.NewDriverDirectory(redisClient),
			orders:  repository.NewOrderRepository(postgresClient.GetDB()),
			zones:   catalog,
		}

		healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
		healthService.AddChecker("zone_catalog", catalog.Breaker())
	}

	// NATS always carries the inbound driver and dispatch subjects
	natsClient, err := nats.NewClient(configs.NATS.URL, appName)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	logger.Info("NATS client initialized",
		logger.String("url", configs.NATS.URL),
		logger.Bool("connected", natsClient.IsConnected()))

	var publisher gateway.EventPublisher = natsClient
	broker := "nats"
	if configs.Events.Broker == "nsq" {
		producer, err := nsq.NewProducer(configs.NSQ.Address)
		if err != nil {
			zapLogger.Fatal("Failed to create NSQ producer", logger.Err(err))
		}
		cleanups = append(cleanups, func(context.Context) error {
			zapLogger.Info("Stopping NSQ producer...")
			producer.Stop()
			return nil
		})
		healthService.AddChecker("nsq", health.NewPingHealthChecker(producer))
		publisher = producer
		broker = "nsq"
	}

	// Initialize gateway, usecase and handlers
	dispatchGW := gateway.NewDispatchGW(publisher, broker)
	dispatchUC := usecase.NewDispatchUC(configs, st.drivers, st.orders, st.zones, dispatchGW,
		usecase.WithLogger(zapLogger))
	dispatchHandler := handler.NewHandler(dispatchUC, natsClient, nrApp, configs)

	if err := dispatchHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	if configs.Server.ReadTimeout > 0 {
		e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	}
	if configs.Server.WriteTimeout > 0 {
		e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second
	}

	// Panic recovery should be first
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(middleware.RequestID())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	mw := httpHandler.RouteMiddlewares{
		Driver:   middleware.JWTMiddleware(configs.JWT.Secret),
		Internal: middleware.APIKeyMiddleware(configs.APIKeys.Hashes),
	}
	if redisClient != nil {
		mw.Quote = []echo.MiddlewareFunc{
			middleware.IPRateLimiter(quoteRateLimit, quoteRatePeriod, redisClient.GetClient()),
		}
	}
	dispatchHandler.RegisterRoutes(e, mw)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	// Cleanups run in reverse registration order, so New Relic goes last
	srv.OnShutdown(func(context.Context) error {
		if nrApp != nil {
			zapLogger.Info("Shutting down New Relic...")
			nrApp.Shutdown(10 * time.Second)
		}
		return nil
	})
	for _, fn := range cleanups {
		srv.OnShutdown(fn)
	}
	srv.OnShutdown(func(context.Context) error {
		zapLogger.Info("Draining NATS connection...")
		dispatchHandler.Close()
		return natsClient.Drain()
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := srv.Run(ctx)
	zapLogger.Info("Server exiting", logger.Bool("clean", runErr == nil))
	_ = zapLogger.Close()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Printf("dispatch service stopped with error: %v", runErr)
		os.Exit(1)
	}
}
