package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caiyueliang/client/internal/config"
	"github.com/caiyueliang/client/internal/metrics"
	"github.com/caiyueliang/client/internal/sequence"
	"github.com/caiyueliang/client/internal/server"
)

const (
	defaultConfigPath = "configs/config.yaml"
	serviceName       = "sequence-inference-service"
	serviceVersion    = "1.0.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	// Log service startup
	logger.Info("Service starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("config_path", *configPath),
	)

	logger.Info("Configuration loaded",
		slog.Int("grpc_port", cfg.Server.GRPCPort),
		slog.String("bind_address", cfg.Server.BindAddress),
		slog.Int("max_concurrent_streams", cfg.Server.MaxConcurrentStreams),
		slog.Int("sequence_idle_timeout", cfg.Sequence.IdleTimeout),
		slog.Int("sequence_max_active", cfg.Sequence.MaxActive),
		slog.Int("model_count", len(cfg.Models)),
		slog.String("log_level", cfg.Logging.Level),
	)

	// Initialize Prometheus metrics
	appMetrics := metrics.NewMetrics()
	logger.Info("Prometheus metrics initialized")

	// Build the model registry from configuration
	models := make([]sequence.Model, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		models = append(models, sequence.Model{
			Name:              m.Name,
			FoldCorrelationID: m.FoldCorrelationID,
		})
	}
	registry := sequence.NewRegistry(models)

	// Initialize sequence state manager
	manager := sequence.NewManager(logger, sequence.ManagerConfig{
		IdleTimeout:     cfg.Sequence.GetIdleTimeoutDuration(),
		CleanupInterval: cfg.Sequence.GetCleanupIntervalDuration(),
		MaxActive:       cfg.Sequence.MaxActive,
	}, appMetrics)
	logger.Info("Sequence state manager initialized",
		slog.Duration("idle_timeout", cfg.Sequence.GetIdleTimeoutDuration()),
	)

	// Initialize gRPC inference server
	grpcServer := server.NewGRPCServer(&cfg.Server, logger, registry, manager, appMetrics)

	// Initialize HTTP API server (if enabled)
	var httpServer *server.HTTPServer
	if cfg.HTTP.Enabled {
		httpServer = server.NewHTTPServer(cfg.HTTP, logger, cfg, manager, appMetrics)
		logger.Info("HTTP API server initialized",
			slog.String("address", fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port)),
		)
	}

	// Start gRPC server
	if err := grpcServer.Start(); err != nil {
		logger.Error("Failed to start gRPC server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start HTTP server (if enabled)
	if httpServer != nil {
		if err := httpServer.Start(); err != nil {
			logger.Error("Failed to start HTTP server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Service started successfully, waiting for signals...",
		slog.String("grpc_address", grpcServer.Addr()),
	)

	sig := <-sigChan
	logger.Info("Received shutdown signal", slog.String("signal", sig.String()))

	logger.Info("Starting graceful shutdown...")

	// Stop HTTP server first (stop accepting new requests)
	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping HTTP server", slog.String("error", err.Error()))
		}
	}

	// Stop gRPC server (drains in-flight streams)
	grpcServer.Stop()

	// Stop sequence manager (discards remaining state, stops cleanup)
	activeSequences := manager.ActiveCount()
	manager.Stop()

	logger.Info("Final server statistics",
		slog.Int("active_sequences_at_shutdown", activeSequences),
	)

	logger.Info("Service stopped")
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // default fallback
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug, // Add source info for debug level
	}

	// Determine output destination
	var output *os.File
	switch cfg.Output {
	case "stderr":
		output = os.Stderr
	case "stdout", "":
		output = os.Stdout
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stdout\n", cfg.Output, err)
			output = os.Stdout
		} else {
			output = file
		}
	}

	// Create handler based on format
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "text", "":
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
