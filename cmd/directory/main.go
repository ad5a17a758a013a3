// Package main initializes and starts the mock directory API server,
// setting up configuration, logging, the database connection, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"pocketbank/internal/config"
	"pocketbank/internal/db"
	"pocketbank/internal/logger"
	"pocketbank/internal/metrics"
	"pocketbank/internal/middleware"
	"pocketbank/internal/repository"
	"pocketbank/internal/server/handler/http"
	"pocketbank/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the Postgres connection and apply migrations.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and bank accounts.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	accountRepo := repository.NewPostgresAccountRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	accountService := service.NewAccountService(accountRepo, userRepo)

	// Create HTTP handlers for the user and account endpoints.
	userHandler := &http.UserHandler{UserService: userService}
	accountHandler := &http.AccountHandler{AccountService: accountService}

	// Rate limiting and metrics collection.
	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer limiter.Stop()
	collector := metrics.NewCollector()

	// Build the router with middleware and routes.
	router := http.NewRouter(userHandler, accountHandler, limiter, collector, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting directory server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start directory server", zap.Error(err))
	}
}
