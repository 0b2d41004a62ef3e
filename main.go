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

	"goshuffle/adapters/httpapi"
	"goshuffle/adapters/rng"
	"goshuffle/app"
	"goshuffle/domain/shuffle"
	"goshuffle/internal"
	"goshuffle/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(appConfig.Server.GinMode)
	logger := internal.NewLogger(appConfig.LogLevel)

	shuffle.SetDefaultStrategy(appConfig.Shuffle.DefaultStrategy)
	logger.Info("default strategy: %s", appConfig.Shuffle.DefaultStrategy.Name())

	rngPort := rng.NewAdapter(appConfig.Shuffle.Seed)
	server := httpapi.NewServer(
		app.NewShuffleService(rngPort, logger),
		app.NewSimulationService(rngPort, appConfig.Simulation, appConfig.Shuffle.Seed, logger),
		logger,
	)

	httpServer := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting shuffle API on http://localhost%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
