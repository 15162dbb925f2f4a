// Package main is the main package for dgram, a UDP datagram listener
// that logs every datagram it receives.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/observiq/dgram/internal/config"
	"github.com/observiq/dgram/internal/logging"
	"github.com/observiq/dgram/internal/service"
	"github.com/observiq/dgram/internal/telemetry/metrics"
	"github.com/observiq/dgram/listener"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("dgram", pflag.ExitOnError)
	cfg, err := config.Load(flags, os.Args[1:])
	if err != nil {
		fmt.Printf("Failed to load config: %s\n", err.Error())
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Failed to validate config: %s\n", err.Error())
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %s\n", err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received signal, initiating graceful shutdown", zap.String("signal", sig.String()))
		cancel()
	}()

	var telemetry service.Telemetry
	if cfg.Metrics.Enabled {
		prom, err := metrics.NewPrometheus(logger, config.Address(cfg.Metrics.Host, cfg.Metrics.Port))
		if err != nil {
			logger.Error("Failed to create metrics exporter", zap.Error(err))
			os.Exit(1)
		}
		telemetry = prom
	}

	handler, err := listener.NewLogHandler(logger)
	if err != nil {
		logger.Error("Failed to create log handler", zap.Error(err))
		os.Exit(1)
	}

	udp, err := listener.NewUDP(ctx, logger, cfg.Listener.Host, cfg.Listener.Port, cfg.Listener.BufferSize, handler)
	if err != nil {
		logger.Error("Failed to bind UDP listener", zap.Error(err))
		os.Exit(1)
	}

	svc, err := service.New(logger, udp, telemetry)
	if err != nil {
		logger.Error("Failed to create service", zap.Error(err))
		os.Exit(1)
	}

	if err := svc.Start(ctx); err != nil {
		logger.Error("Failed to start service", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("dgram started", zap.String("address", udp.Addr().String()))

	exitCode := 0
	select {
	case <-ctx.Done():
	case <-svc.Done():
		logger.Error("UDP listener stopped unexpectedly")
		exitCode = 1
	}

	if err := svc.Stop(); err != nil {
		logger.Error("Failed to stop service", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("dgram shutdown complete")
	if exitCode != 0 {
		_ = logger.Sync()
		os.Exit(exitCode)
	}
}
