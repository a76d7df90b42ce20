package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tiendascan/pkg/alerts"
	"tiendascan/pkg/config"
	"tiendascan/pkg/handlers"
	"tiendascan/pkg/logger"
	"tiendascan/pkg/scheduler"
	"tiendascan/pkg/server"
	"tiendascan/pkg/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := logger.InitLogger(cfg.App.Development, cfg.App.LogFile, cfg.App.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting tiendascan server",
		zap.String("log_level", cfg.App.LogLevel),
		zap.Bool("development", cfg.App.Development),
	)

	st, err := store.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := alerts.NewHub(cfg.GetAlertsConfig())
	hub.SetRecorder(st)
	go hub.Run(ctx)

	var sched *scheduler.StockScheduler
	if cfg.GetSchedulerConfig().Enabled {
		sched, err = scheduler.NewStockScheduler(ctx, cfg, st, hub)
		if err != nil {
			logger.Fatal("Failed to init scheduler", zap.Error(err))
		}
		go func() {
			if err := sched.Start(); err != nil {
				logger.Error("Scheduler stopped with error", zap.Error(err))
			}
		}()
	}

	handlerSvc := handlers.NewHandlerService(st, hub, cfg)
	srv := server.NewHTTPServer(cfg, handlerSvc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("Server exited with error", zap.Error(err))
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if sched != nil {
		if err := sched.Shutdown(shutdownCtx); err != nil {
			logger.Error("Scheduler shutdown failed", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
}
