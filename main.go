package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catering/config"
	"catering/cron"
	"catering/database"
	bookingRepo "catering/database/repository/booking"
	catalogRepo "catering/database/repository/catalog"
	"catering/handlers"
	"catering/middleware"
	"catering/routes"
	"catering/services/booking"
	"catering/services/catalog"
	"catering/services/payment"
	"catering/services/tasks"
	"catering/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	for _, w := range config.AppConfig.Warnings() {
		logger.Warn("main: configuration incomplete", zap.String("detail", w))
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Data store. A Disconnected client is returned when none is reachable.
	store := database.InitDB(
		config.AppConfig.DatabaseURL,
		config.AppConfig.DatabaseName,
		config.AppConfig.MigrationsPath,
		logger,
	)
	defer store.Close(context.Background())

	// Redis-backed catalog cache and payment alert queue, both optional.
	var catalogCache catalog.Cache
	var cachePinger utils.Pinger
	if cacheClient := utils.InitCache(); cacheClient != nil {
		defer cacheClient.Close()
		catalogCache = catalog.NewRedisCache(cacheClient, config.AppConfig.CatalogCacheTTL)
		cachePinger = utils.PingFunc(func(ctx context.Context) error { return cacheClient.Ping(ctx).Err() })
	}

	var alerts payment.AlertSink
	var queuePinger utils.Pinger
	if config.AppConfig.RedisAddr != "" {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}
		queueClient := asynq.NewClient(redisOpts)
		defer queueClient.Close()
		alerts = tasks.NewAlertQueue(queueClient)
		queuePinger = utils.PingFunc(func(context.Context) error { return queueClient.Ping() })

		worker := cron.InitPaymentAlertWorker(ctx, redisOpts, logger)
		defer worker.Shutdown()
	}

	// repositories.
	bookings := bookingRepo.NewTableBookingRepo(store)
	catalogs := catalogRepo.NewTableCatalogRepo(store)

	// services.
	bookingService := booking.NewBookingService(bookings)
	catalogService := catalog.NewCatalogService(catalogs, catalogCache)
	gateway := payment.NewStripeGateway(
		config.AppConfig.StripeKey,
		config.AppConfig.StripeWebhookSecret,
		payment.NewStripeBackends(),
	)
	paymentService := payment.NewPaymentService(gateway, bookingService, alerts)

	monitor := utils.NewHealthMonitor(store, cachePinger, queuePinger)
	monitor.Start(ctx, 30*time.Second)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	healthHandler := handlers.NewHealthHandler(monitor)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Catalog endpoints.
		GetPricesHandler:             catalogHandler.GetPricesHandler,
		GetPricesByServiceHandler:    catalogHandler.GetPricesByServiceHandler,
		GetAllergensHandler:          catalogHandler.GetAllergensHandler,
		GetAllergensByServiceHandler: catalogHandler.GetAllergensByServiceHandler,
		GetAllergenMatrixHandler:     catalogHandler.GetAllergenMatrixHandler,
		CalculateQuoteHandler:        catalogHandler.CalculateQuoteHandler,

		// Booking endpoints.
		CreateBookingHandler: bookingHandler.CreateBookingHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		UpdateBookingHandler: bookingHandler.UpdateBookingHandler,

		// Payment endpoints.
		CreateCheckoutSessionHandler: paymentHandler.CreateCheckoutSessionHandler,
		PaymentSuccessHandler:        paymentHandler.PaymentSuccessHandler,
		PaymentCancelledHandler:      paymentHandler.PaymentCancelledHandler,
		WebhookHandler:               paymentHandler.WebhookHandler,
		RefundHandler:                paymentHandler.RefundHandler,

		HealthHandler: healthHandler.GetHealthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.Proxies()); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	// Stripe retries webhooks from a handful of IPs; they are verified by signature instead.
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, "/webhook"))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.Origins())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
