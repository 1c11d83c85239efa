package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/chrisvarga/gimli/internal/api"
	"github.com/chrisvarga/gimli/internal/config"
	"github.com/chrisvarga/gimli/internal/infrastructure/logger"
	metricsapp "github.com/chrisvarga/gimli/internal/metrics/application"
	"github.com/chrisvarga/gimli/internal/metrics/domain"
	metricsinfra "github.com/chrisvarga/gimli/internal/metrics/infrastructure"
	"github.com/chrisvarga/gimli/internal/protocol"
	"github.com/chrisvarga/gimli/internal/shared/validation"
)

func run() error {
	var (
		port     = flag.String("port", "", "protocol listener port (default 1337, env GIMLI_PORT)")
		httpPort = flag.String("http-port", "", "HTTP API port, 0 disables (default 8080, env GIMLI_HTTP_PORT)")
		maxConns = flag.String("max-conns", "", "max concurrent protocol connections (default 256, env GIMLI_MAX_CONNS)")
		envFile  = flag.String("env-file", "", "path to .env file (default .env)")
	)
	flag.Parse()

	// Load .env before building the env-driven logger.
	config.LoadEnvFile(logger.DefaultLogger(), *envFile)

	appLogger := logger.NewLogger()
	logger.SetDefaultLogger(appLogger)

	cfg := config.LoadRuntime(*port, *httpPort, *maxConns)
	if problems := cfg.Valid(); len(problems) > 0 {
		return validation.NewValidationError(problems, "runtime")
	}

	appLogger.Info("Starting gimli", "port", cfg.Port, "http_port", cfg.HTTPPort, "max_conns", cfg.MaxConns)

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reader := metricsinfra.NewSystemReader()

	cores, err := reader.Cores(sigCtx)
	if err != nil {
		appLogger.Warn("Failed to count cores, falling back to runtime", "err", err)
		cores = runtime.NumCPU()
	}

	snap := domain.NewSnapshot(cores)

	collector := metricsapp.NewCollector(appLogger, reader, snap)
	collector.Start()
	appLogger.Debug("Samplers started", "cores", cores)

	serverErrChan := make(chan error, 2)

	protoServer := protocol.NewServer(appLogger, protocol.NewRouter(snap), ":"+cfg.Port, cfg.MaxConnsLimit())
	go func() {
		if err := protoServer.Start(); err != nil {
			serverErrChan <- fmt.Errorf("protocol server error: %w", err)
		}
	}()

	var httpServer *api.Server
	if cfg.HTTPEnabled() {
		httpServer = api.NewServer(appLogger, snap, cfg.HTTPPort)
		go func() {
			if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
				serverErrChan <- fmt.Errorf("HTTP API error: %w", err)
			}
		}()
	}

	select {
	case <-sigCtx.Done():
		appLogger.Info("Shutdown signal received, starting graceful shutdown")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	var shutdownErr error
	if err := protoServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Protocol server shutdown error", "err", err)
		shutdownErr = fmt.Errorf("protocol server shutdown error: %w", err)
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP API shutdown error", "err", err)
			if shutdownErr == nil {
				shutdownErr = fmt.Errorf("HTTP API shutdown error: %w", err)
			}
		}
	}

	if err := collector.Stop(shutdownCtx); err != nil {
		appLogger.Error("Collector shutdown error", "err", err)
		if shutdownErr == nil {
			shutdownErr = fmt.Errorf("collector shutdown error: %w", err)
		}
	}

	if shutdownErr == nil {
		appLogger.Info("Graceful shutdown completed")
	}
	return shutdownErr
}

func main() {
	if err := run(); err != nil {
		logger.DefaultLogger().Error("Application error", "err", err)
		os.Exit(1)
	}
}
