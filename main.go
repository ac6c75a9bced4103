// File: lexconnect/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexconnect/config"
	"lexconnect/database/session"
	"lexconnect/handlers"
	"lexconnect/middleware"
	"lexconnect/routes"
	bookingSvc "lexconnect/services/booking"
	"lexconnect/services/recommend"
	userSvc "lexconnect/services/user"
	"lexconnect/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Session-scoped state lives in Redis, one JSON blob per key.
	sessionStore := session.NewRedisStore(utils.GetSessionCacheClient())

	seed := config.AppConfig.GeneratorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ttl := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.GeolocationMiddleware())

	// services.
	recommendService := recommend.NewDefaultService(
		sessionStore, config.AppConfig.ProviderPoolSize, seed, ttl)
	if err := recommendService.Initialize(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: failed to prime recommendation engine: %v", err)
	}
	workflowService := bookingSvc.NewDefaultWorkflowService(sessionStore, recommendService, seed, ttl)
	userService := userSvc.NewDefaultService(sessionStore, ttl)

	// handlers.
	recommendHandler := handlers.NewRecommendHandler(recommendService, logger)
	bookingHandler := handlers.NewBookingHandler(workflowService, logger)
	userHandler := handlers.NewUserHandler(userService, recommendService, logger)

	routes.RegisterRoutes(router, recommendHandler, bookingHandler, userHandler)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
