package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-gateway/src/config"
	"storefront-gateway/src/control"
	"storefront-gateway/src/gateway"
	"storefront-gateway/src/logger"
	"storefront-gateway/src/pricing"
	"storefront-gateway/src/rest"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)
	defer appLogger.Sync()

	// Create the gateway and the pricing engine from config
	gatewayService := gateway.NewGateway(cfg, appLogger)
	reconciler := pricing.NewReconciler(&cfg.Pricing, appLogger)

	// Create health control service
	controlService, err := control.NewGRPCService(cfg, appLogger)
	if err != nil {
		appLogger.Critical("failed to create control service: %v", err)
		os.Exit(1)
	}

	// Create REST API server
	apiServer := rest.NewAPIServer(cfg, appLogger, gatewayService, reconciler)

	// Start gRPC health server
	go func() {
		if err := controlService.Start(); err != nil {
			appLogger.Critical("control server error: %v", err)
			os.Exit(1)
		}
	}()

	// Start REST API server
	go func() {
		if err := apiServer.Start(); err != nil {
			appLogger.Critical("REST API server error: %v", err)
			os.Exit(1)
		}
	}()

	// Start gateway streams
	if err := gatewayService.Start(); err != nil {
		appLogger.Critical("failed to start gateway: %v", err)
		os.Exit(1)
	}
	controlService.SetServing(true)

	appLogger.Info("storefront gateway running. REST API: :%d, gRPC: %s:%d",
		cfg.Port, cfg.GRPCHost, cfg.GRPCPort)
	appLogger.Info("Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("shutting down...")
	controlService.SetServing(false)

	if err := gatewayService.Stop(); err != nil {
		appLogger.Error("failed to stop gateway: %v", err)
	}
	if err := apiServer.Stop(); err != nil {
		appLogger.Error("failed to stop REST API server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := controlService.Stop(ctx); err != nil {
		appLogger.Error("failed to stop control service: %v", err)
	}
}
