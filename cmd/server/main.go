package main

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/akeren/interest-waitlist/config"
	"github.com/akeren/interest-waitlist/domain"
	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/constants"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := log.NewLoggerWithJSONOutput()

	if err := run(logger, os.Args[1:]); err != nil {
		logger.Error("Server exited with error", "error", err.Error())
		os.Exit(1)
	}
}

func autoMigrateRequested(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		arg = strings.ToLower(arg)
		return arg == "--auto-migrate" || arg == "-m"
	})
}

func run(logger *log.Logger, args []string) error {
	logger.Info("Starting interest waitlist server", "service", constants.ServiceName)

	appConfig, err := config.LoadApplicationConfiguration(logger, autoMigrateRequested(args))
	if err != nil {
		return err
	}
	defer appConfig.Cleanup()

	domain.SetupCoreDomain(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	logger.Info("Graceful shutdown completed")
	return nil
}
