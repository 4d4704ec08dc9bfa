package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gbm/internal/appConfig"
	"gbm/internal/backupCommand"
	logger "gbm/internal/log"
	typex "gbm/type"
)

func main() {
	var verbose = typex.NullableBool{}
	flag.Var(&verbose, "verbose", "Print verbose output")
	flag.Parse()

	if err := run(verbose.Val(false)); err != nil {
		logger.Log.Fatalf("Backup failed: %v", err)
	}
}

func run(verbose bool) error {
	if _, err := logger.InitLogger(verbose, ""); err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}

	config, err := appConfig.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if config.LogFile != "" {
		closer, err := logger.InitLogger(verbose, config.LogFile)
		if err != nil {
			return fmt.Errorf("failed to initialise logging: %w", err)
		}
		defer func() {
			logger.Log.SetOutput(os.Stderr)
			_ = closer.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return backupCommand.ExecuteBackupCommand(ctx, config)
}
