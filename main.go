package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busfleet/config"
	"busfleet/database"
	bookingRepo "busfleet/database/repository/booking"
	fleetRepo "busfleet/database/repository/fleet"
	reservationRepo "busfleet/database/repository/reservation"
	tripRepo "busfleet/database/repository/trip"
	"busfleet/handlers"
	"busfleet/middleware"
	"busfleet/routes"
	"busfleet/services/booking"
	"busfleet/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.InitDB(context.Background(), logger); err != nil {
		logger.Fatal("Database initialization failed", zap.Error(err))
	}
	db := database.DB()

	// repositories.
	trips := tripRepo.NewMongoTripRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	fleet := fleetRepo.NewMongoFleetRepo(db)
	reservations := reservationRepo.NewMongoReservationRepo(db)

	// trip locks.
	var locker booking.TripLocker
	var redisClients []*redis.Client
	if config.UsesRedisLocks() {
		lockClient := utils.GetLockClient()
		redisClients = append(redisClients, lockClient)
		ttl := time.Duration(config.AppConfig.TripLockTTLSeconds) * time.Second
		locker = booking.NewRedisTripLocker(lockClient, ttl, logger)
		logger.Info("Using Redis trip locks", zap.Duration("ttl", ttl))
	} else {
		locker = booking.NewLocalTripLocker()
		logger.Info("Using in-process trip locks")
	}

	// payments.
	var payments booking.PaymentProcessor
	if config.AppConfig.StripeKey != "" {
		stripeProcessor, err := booking.NewStripePaymentProcessor(
			config.AppConfig.StripeKey,
			config.AppConfig.PaymentCurrency,
			config.AppConfig.StripePaymentMethod,
			logger,
		)
		if err != nil {
			logger.Fatal("Invalid Stripe configuration", zap.Error(err))
		}
		payments = stripeProcessor
	} else {
		payments = booking.NewSimulatedPaymentProcessor(logger)
		logger.Warn("STRIPE_KEY not set, payments are simulated")
	}

	bookingService := &booking.DefaultBookingService{
		Trips:        trips,
		Bookings:     bookings,
		Fleet:        fleet,
		Reservations: reservations,
		Locker:       locker,
		Payments:     payments,
		Logger:       logger,
		Currency:     config.AppConfig.PaymentCurrency,
		MaxAttempts:  config.AppConfig.ReservationMaxAttempts,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewTripHandler(bookingService),
		handlers.NewBookingHandler(bookingService),
	)
	routes.RegisterRoutes(router, handlerBundle)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	utils.StartHealthMonitor(monitorCtx, time.Minute, redisClients, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect failed: %v", err)
	}
	for _, c := range redisClients {
		_ = c.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
