package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"usernotes/internal/config"
	"usernotes/internal/database"
	"usernotes/internal/server"

	"github.com/gofiber/fiber/v2/log"
)

func gracefulShutdown(fiberServer *server.FiberServer, db database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight requests get 5 seconds to finish before the store is closed.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberServer.ShutdownWithContext(ctx); err != nil {
		log.Errorf("server forced to shutdown with error: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Errorf("error closing database: %v", err)
	}

	log.Info("server exiting")
	done <- true
}

func main() {
	cfg := config.Load()

	db, err := database.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	app := server.New(db, cfg)
	app.RegisterFiberRoutes()

	done := make(chan bool, 1)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("http server error: %v", err)
		}
	}()

	go gracefulShutdown(app, db, done)

	<-done
	log.Info("graceful shutdown complete")
}
