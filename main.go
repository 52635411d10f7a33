package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"corneradvisor/config"
	"corneradvisor/config/database"
	"corneradvisor/internal/auth/token"
	catalogRepository "corneradvisor/internal/catalog/repository"
	reviewRepository "corneradvisor/internal/review/repository"
	"corneradvisor/pkg/logger"
	"corneradvisor/router"
	"corneradvisor/socket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Sugar.Fatalf("Invalid configuration: %v", err)
	}
	logger.Init(cfg.Log.Level)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Sugar.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Sugar.Errorf("Failed to disconnect from database: %v", err)
		}
	}()

	services, reviews := database.Collections(client, cfg.Database.Name)

	hub := socket.NewHub()
	go hub.Run(ctx)

	handler := router.Setup(router.Dependencies{
		Services: catalogRepository.NewServiceRepository(services),
		Reviews:  reviewRepository.NewReviewRepository(reviews),
		Tokens:   token.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Hub:      hub,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, client)
		},
		AllowedOrigins: cfg.Server.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Sugar.Infof("The server running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Errorf("Graceful shutdown failed: %v", err)
	}
}
