package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"textinsight/internal/app"
	"textinsight/internal/config"
	"textinsight/internal/jobs"
	"textinsight/internal/logging"
	"textinsight/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logCloser, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer logCloser.Close()

	// Wire analyzer and store; opening the store runs migrations
	a, err := app.New(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	// Start retention pruner if configured
	if cfg.RetentionDays > 0 {
		pruner, err := jobs.NewRetentionPruner(a.Pruner(), cfg.RetentionDays, cfg.RetentionSchedule, nil)
		if err != nil {
			log.Printf("Retention disabled: %v", err)
		} else {
			go pruner.Start(ctx)
		}
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(a)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
